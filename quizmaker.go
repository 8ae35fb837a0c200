package learnhub

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// QuizMaker asks the text generator for a multiple choice quiz
type QuizMaker struct {
	gen        TextGenerator
	transcript *LLMLogger
	metrics    *Metrics
}

// NewQuizMaker creates a new quiz maker
func NewQuizMaker(gen TextGenerator, transcript *LLMLogger, metrics *Metrics) *QuizMaker {
	return &QuizMaker{
		gen:        gen,
		transcript: transcript,
		metrics:    metrics,
	}
}

// MakeQuiz returns the raw generator output for req
func (qm *QuizMaker) MakeQuiz(ctx context.Context, req GenerationRequest) (string, error) {
	start := time.Now()
	raw, err := generate(ctx, qm.gen, qm.transcript, "QuizMaker", qm.buildPrompt(req))
	qm.metrics.observeUpstream("text_generator", start, err)
	if err != nil {
		return "", fmt.Errorf("failed to generate quiz: %w", err)
	}
	return raw, nil
}

func (qm *QuizMaker) buildPrompt(req GenerationRequest) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Generate %d multiple choice questions about: %s\n\n", req.NumQuestions, req.Topic))

	sb.WriteString("Requirements:\n")
	sb.WriteString("- Number the questions with an integer \"id\" starting at 1\n")
	sb.WriteString("- Each question must have exactly 4 options\n")
	sb.WriteString("- \"correct_answer\" must repeat one of the options word for word\n")
	sb.WriteString("- Incorrect options should be plausible but clearly wrong\n")
	sb.WriteString("- Avoid questions where the answer is given away in the question text\n\n")

	sb.WriteString("Return a single JSON object with the key \"quiz\" holding an array of questions, ")
	sb.WriteString("each with the keys \"id\", \"question\", \"options\" and \"correct_answer\".\n")
	sb.WriteString("Wrap the JSON object in a ```json fenced code block and write no other text.\n")

	return sb.String()
}
