package learnhub

import "strings"

// Language is a supported content language
type Language struct {
	Code string
	Name string
}

// DefaultLanguage is used for any code that is not in the table
var DefaultLanguage = Language{Code: "en", Name: "English"}

var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"hi": "Hindi",
	"fr": "French",
	"de": "German",
}

// ResolveLanguage maps a language code to its display name. Unknown or empty
// codes fall back to English.
func ResolveLanguage(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	name, ok := languageNames[code]
	if !ok {
		return DefaultLanguage, false
	}
	return Language{Code: code, Name: name}, true
}
