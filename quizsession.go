package learnhub

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MaxNumQuestions bounds a single quiz request
const MaxNumQuestions = 50

// RemarkBand groups scores for feedback
type RemarkBand string

const (
	BandExcellent        RemarkBand = "excellent"
	BandKeepPracticing   RemarkBand = "keep_practicing"
	BandNeedsImprovement RemarkBand = "needs_improvement"
)

// Remark returns the band and feedback text for a 0-100 score
func Remark(score int) (RemarkBand, string) {
	switch {
	case score >= 80:
		return BandExcellent, "Excellent work! You have a strong grasp of this topic."
	case score >= 50:
		return BandKeepPracticing, "Good effort! Keep practicing to master this topic."
	default:
		return BandNeedsImprovement, "Needs improvement. Review the material and try again."
	}
}

// QuizManager issues quizzes and grades them. Answer keys never leave the
// session store; each token can be graded once.
type QuizManager struct {
	maker   *QuizMaker
	checker *QuestionChecker
	store   SessionStore
	metrics *Metrics
	log     *Logger
}

// NewQuizManager creates a quiz manager backed by store
func NewQuizManager(gen TextGenerator, store SessionStore, metrics *Metrics, transcript *LLMLogger, log *Logger) (*QuizManager, error) {
	checker, err := NewQuestionChecker()
	if err != nil {
		return nil, err
	}
	return &QuizManager{
		maker:   NewQuizMaker(gen, transcript, metrics),
		checker: checker,
		store:   store,
		metrics: metrics,
		log:     orNop(log),
	}, nil
}

// Generate creates a quiz of count questions on topic. A count of zero or
// less means DefaultNumQuestions. Nothing is stored unless the whole quiz is valid.
func (qm *QuizManager) Generate(ctx context.Context, topic string, count int) (*GeneratedQuiz, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, missingField("topic")
	}
	if count <= 0 {
		count = DefaultNumQuestions
	}
	if count > MaxNumQuestions {
		return nil, fmt.Errorf("%w: num_questions must be at most %d", ErrInvalidArgument, MaxNumQuestions)
	}

	quiz, err := qm.generate(ctx, GenerationRequest{Topic: topic, NumQuestions: count})
	qm.metrics.quizGenerated(err)
	if err != nil {
		return nil, err
	}

	qm.log.Info("Quiz generated", "topic", topic, "questions", len(quiz.Questions))
	return quiz, nil
}

func (qm *QuizManager) generate(ctx context.Context, req GenerationRequest) (*GeneratedQuiz, error) {
	raw, err := qm.maker.MakeQuiz(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	questions, err := qm.checker.CheckQuiz(raw, req.NumQuestions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	client := make([]ClientQuestion, 0, len(questions))
	key := make(AnswerKey, len(questions))
	for _, q := range questions {
		client = append(client, ClientQuestion{ID: q.ID, Text: q.Text, Options: q.Options})
		key[strconv.Itoa(q.ID)] = q.CorrectAnswer
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}
	if err := qm.store.PutSession(ctx, QuizSession{Token: token, AnswerKey: key}); err != nil {
		return nil, fmt.Errorf("failed to store quiz session: %w", err)
	}

	return &GeneratedQuiz{Token: token, Questions: client}, nil
}

// Grade scores answers against the key stored under token and consumes the
// token. Missing answers count as wrong.
func (qm *QuizManager) Grade(ctx context.Context, token string, answers map[string]string) (*GradeResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, missingField("quiz_token")
	}
	if len(answers) == 0 {
		return nil, missingField("answers")
	}

	session, err := qm.store.TakeSession(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid or expired quiz token", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load quiz session: %w", err)
	}

	result := GradeQuiz(session.AnswerKey, answers)
	band, _ := Remark(result.Score)
	qm.metrics.quizGraded(band)
	qm.log.Debug("Quiz graded", "score", result.Score, "correct", result.Correct, "total", result.Total)
	return result, nil
}

// GradeQuiz compares answers with key. The score is the floor of the correct
// percentage, zero for an empty key.
func GradeQuiz(key AnswerKey, answers map[string]string) *GradeResult {
	ids := make([]string, 0, len(key))
	for id := range key {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, compareQuestionIDs)

	result := &GradeResult{
		Total:   len(ids),
		Details: make([]QuestionResult, 0, len(ids)),
	}
	for _, id := range ids {
		given := strings.TrimSpace(answers[id])
		isCorrect := given != "" && given == strings.TrimSpace(key[id])
		if isCorrect {
			result.Correct++
		}
		result.Details = append(result.Details, QuestionResult{
			QuestionID:    id,
			YourAnswer:    answers[id],
			CorrectAnswer: key[id],
			IsCorrect:     isCorrect,
		})
	}

	if result.Total > 0 {
		result.Score = result.Correct * 100 / result.Total
	}
	_, result.Remark = Remark(result.Score)
	return result
}

// compareQuestionIDs orders numeric ids numerically, anything else after them lexically
func compareQuestionIDs(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return cmp.Compare(ai, bi)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func newToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to create quiz token: %w", err)
	}
	return id.String(), nil
}
