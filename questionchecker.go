package learnhub

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/xeipuuv/gojsonschema"
)

// quizSchema is the shape the generator is asked to produce
const quizSchema = `{
	"type": "object",
	"required": ["quiz"],
	"properties": {
		"quiz": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["id", "question", "options", "correct_answer"],
				"properties": {
					"id": {"type": "integer"},
					"question": {"type": "string", "minLength": 1},
					"options": {
						"type": "array",
						"minItems": 4,
						"maxItems": 4,
						"items": {"type": "string", "minLength": 1}
					},
					"correct_answer": {"type": "string", "minLength": 1}
				}
			}
		}
	}
}`

// QuestionChecker validates generator output and turns it into questions.
// Any problem rejects the whole quiz.
type QuestionChecker struct {
	schema *gojsonschema.Schema
}

// NewQuestionChecker compiles the quiz schema
func NewQuestionChecker() (*QuestionChecker, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(quizSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile quiz schema: %w", err)
	}
	return &QuestionChecker{schema: schema}, nil
}

// CheckQuiz parses raw generator output. The ```json block is used when
// present, otherwise the whole text. At most limit questions are kept.
func (qc *QuestionChecker) CheckQuiz(raw string, limit int) ([]Question, error) {
	block := ExtractJSONBlockOrText(raw)
	if !json.Valid([]byte(block)) {
		return nil, fmt.Errorf("%w: quiz is not valid JSON", ErrMalformedOutput)
	}

	result, err := qc.schema.Validate(gojsonschema.NewStringLoader(block))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if !result.Valid() {
		messages := lo.Map(result.Errors(), func(e gojsonschema.ResultError, _ int) string {
			return e.String()
		})
		return nil, fmt.Errorf("%w: quiz failed schema validation: %s", ErrMalformedOutput, strings.Join(messages, "; "))
	}

	var payload struct {
		Quiz []Question `json:"quiz"`
	}
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	seen := make(map[int]bool, len(payload.Quiz))
	for i := range payload.Quiz {
		q := &payload.Quiz[i]
		if seen[q.ID] {
			return nil, fmt.Errorf("%w: duplicate question id %d", ErrMalformedOutput, q.ID)
		}
		seen[q.ID] = true

		answer := strings.TrimSpace(q.CorrectAnswer)
		option, ok := lo.Find(q.Options, func(o string) bool {
			return strings.TrimSpace(o) == answer
		})
		if !ok {
			return nil, fmt.Errorf("%w: question %d: correct answer %q is not one of its options", ErrMalformedOutput, q.ID, q.CorrectAnswer)
		}
		q.CorrectAnswer = option
	}

	questions := payload.Quiz
	if limit > 0 && len(questions) > limit {
		questions = questions[:limit]
	}
	return questions, nil
}
