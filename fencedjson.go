package learnhub

import (
	"regexp"
	"strings"
)

var fencedJSONPattern = regexp.MustCompile("(?is)```json\\s*(.*?)\\s*```")

// ExtractJSONBlock returns the body of the first ```json fenced block in text.
func ExtractJSONBlock(text string) (string, bool) {
	m := fencedJSONPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractJSONBlockOrText is ExtractJSONBlock falling back to the whole
// trimmed text when no fence is present.
func ExtractJSONBlockOrText(text string) string {
	if block, ok := ExtractJSONBlock(text); ok {
		return block
	}
	return strings.TrimSpace(text)
}
