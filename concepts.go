package learnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// NumKeyConcepts is how many concepts the generator is asked for
const NumKeyConcepts = 5

// ConceptExtractor pulls key term/definition pairs out of a long explanation.
// It never fails: anything that goes wrong yields an empty list.
type ConceptExtractor struct {
	gen        TextGenerator
	transcript *LLMLogger
	log        *Logger
}

// NewConceptExtractor creates a concept extractor
func NewConceptExtractor(gen TextGenerator, transcript *LLMLogger, log *Logger) *ConceptExtractor {
	return &ConceptExtractor{
		gen:        gen,
		transcript: transcript,
		log:        orNop(log),
	}
}

// Extract returns the key concepts of longText, or an empty list
func (ce *ConceptExtractor) Extract(ctx context.Context, longText string) []Concept {
	if strings.TrimSpace(longText) == "" {
		return []Concept{}
	}

	raw, err := generate(ctx, ce.gen, ce.transcript, "ConceptExtractor", ce.buildPrompt(longText))
	if err != nil {
		ce.log.Warn("Key concept generation failed", "error", err)
		return []Concept{}
	}

	concepts, err := parseConcepts(raw)
	if err != nil {
		ce.log.Warn("Error parsing key concepts", "error", err)
		return []Concept{}
	}
	return concepts
}

func (ce *ConceptExtractor) buildPrompt(longText string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("From the following text, extract the %d most important keywords or concepts. ", NumKeyConcepts))
	sb.WriteString("For each concept, provide a one-sentence definition.\n")
	sb.WriteString(`Return the result as a valid JSON object with a single key "concepts" which is an array of objects, `)
	sb.WriteString(`where each object has "term" and "definition" keys.` + "\n")
	sb.WriteString("Wrap the JSON object in a ```json fenced code block and write no other text.\n\n")
	sb.WriteString(fmt.Sprintf("Text: %q", longText))

	return sb.String()
}

func parseConcepts(raw string) ([]Concept, error) {
	block, ok := ExtractJSONBlock(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no json block", ErrMalformedOutput)
	}

	var payload struct {
		Concepts *[]Concept `json:"concepts"`
	}
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if payload.Concepts == nil {
		return nil, fmt.Errorf(`%w: missing "concepts" key`, ErrMalformedOutput)
	}

	return lo.Filter(*payload.Concepts, func(c Concept, _ int) bool {
		return strings.TrimSpace(c.Term) != ""
	}), nil
}
