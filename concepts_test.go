package learnhub

import (
	"context"
	"testing"
)

func TestConceptExtractor_ParsesFencedBlock(t *testing.T) {
	gen := &scriptedGenerator{replies: map[string]string{conceptMarker: conceptsReply}}
	ce := NewConceptExtractor(gen, nil, nil)

	concepts := ce.Extract(context.Background(), "Photosynthesis converts light into chemical energy.")
	if len(concepts) != 2 {
		t.Fatalf("unexpected concept count: got=%d want=2", len(concepts))
	}
	if concepts[0].Term != "Chlorophyll" || concepts[1].Term != "Glucose" {
		t.Fatalf("unexpected terms: %+v", concepts)
	}
}

func TestConceptExtractor_EmptyOnFailure(t *testing.T) {
	cases := map[string]*scriptedGenerator{
		"generator error": {fail: map[string]error{conceptMarker: errBoom}},
		"no fence":        {replies: map[string]string{conceptMarker: `{"concepts": [{"term": "a", "definition": "b"}]}`}},
		"bad json":        {replies: map[string]string{conceptMarker: "```json\n{\"concepts\": [\n```"}},
		"missing key":     {replies: map[string]string{conceptMarker: "```json\n{\"terms\": []}\n```"}},
	}

	for name, gen := range cases {
		concepts := NewConceptExtractor(gen, nil, nil).Extract(context.Background(), "some text")
		if concepts == nil || len(concepts) != 0 {
			t.Fatalf("%s: expected empty non-nil list, got %#v", name, concepts)
		}
	}
}

func TestConceptExtractor_SkipsEmptyText(t *testing.T) {
	gen := &scriptedGenerator{}
	concepts := NewConceptExtractor(gen, nil, nil).Extract(context.Background(), "   ")
	if len(concepts) != 0 {
		t.Fatalf("expected no concepts, got %d", len(concepts))
	}
	if len(gen.prompts) != 0 {
		t.Fatalf("generator should not be called for empty text")
	}
}

func TestParseConcepts_DropsBlankTerms(t *testing.T) {
	raw := "```json\n" + `{"concepts": [{"term": " ", "definition": "x"}, {"term": "Light", "definition": "Energy source."}]}` + "\n```"
	concepts, err := parseConcepts(raw)
	if err != nil {
		t.Fatalf("parseConcepts: %v", err)
	}
	if len(concepts) != 1 || concepts[0].Term != "Light" {
		t.Fatalf("unexpected concepts: %+v", concepts)
	}
}
