package learnhub

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"
)

func newTestQuizManager(t *testing.T, reply string) (*QuizManager, *MemoryStore, *scriptedGenerator) {
	t.Helper()
	gen := &scriptedGenerator{replies: map[string]string{quizMarker: reply}}
	store := NewMemoryStore(0)
	qm, err := NewQuizManager(gen, store, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewQuizManager: %v", err)
	}
	return qm, store, gen
}

var photosynthesisAnswers = map[string]string{
	"1": "Carbon dioxide",
	"2": "Chloroplast",
	"3": "Chlorophyll",
	"4": "Glucose",
	"5": "Oxygen",
}

func TestGenerate_HidesAnswerKey(t *testing.T) {
	qm, store, _ := newTestQuizManager(t, fiveQuestionQuiz)

	quiz, err := qm.Generate(context.Background(), "Photosynthesis", 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if quiz.Token == "" {
		t.Fatalf("expected a quiz token")
	}
	if len(quiz.Questions) != 5 {
		t.Fatalf("unexpected question count: got=%d want=5", len(quiz.Questions))
	}

	data, err := json.Marshal(quiz)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "correct_answer") {
		t.Fatalf("client quiz leaks answers: %s", data)
	}

	if n, _ := store.Len(context.Background()); n != 1 {
		t.Fatalf("unexpected session count: got=%d want=1", n)
	}
}

func TestGenerate_TruncatesToRequestedCount(t *testing.T) {
	qm, _, gen := newTestQuizManager(t, fiveQuestionQuiz)

	quiz, err := qm.Generate(context.Background(), "Photosynthesis", 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(quiz.Questions) != 3 {
		t.Fatalf("unexpected question count: got=%d want=3", len(quiz.Questions))
	}
	for i, q := range quiz.Questions {
		if len(q.Options) != 4 {
			t.Fatalf("question %d: expected 4 options, got %d", i, len(q.Options))
		}
	}
	if p := gen.promptsContaining(quizMarker); len(p) != 1 || !strings.Contains(p[0], "Generate 3 multiple choice questions about: Photosynthesis") {
		t.Fatalf("unexpected prompt: %v", p)
	}

	res, err := qm.Grade(context.Background(), quiz.Token, photosynthesisAnswers)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if res.Total != 3 || res.Score != 100 {
		t.Fatalf("unexpected grade: total=%d score=%d", res.Total, res.Score)
	}
}

func TestGenerate_DefaultCount(t *testing.T) {
	qm, _, gen := newTestQuizManager(t, fiveQuestionQuiz)

	if _, err := qm.Generate(context.Background(), "Photosynthesis", 0); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := "Generate " + strconv.Itoa(DefaultNumQuestions) + " multiple choice questions"
	if p := gen.promptsContaining(want); len(p) != 1 {
		t.Fatalf("expected default count in prompt %q", want)
	}
}

func TestGenerate_RejectsBadInput(t *testing.T) {
	qm, _, gen := newTestQuizManager(t, fiveQuestionQuiz)

	if _, err := qm.Generate(context.Background(), " ", 5); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for empty topic, got %v", err)
	}
	if _, err := qm.Generate(context.Background(), "Photosynthesis", MaxNumQuestions+1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for too many questions, got %v", err)
	}
	if len(gen.prompts) != 0 {
		t.Fatalf("generator should not be called for invalid input")
	}
}

func TestGenerate_MalformedOutputStoresNothing(t *testing.T) {
	qm, store, _ := newTestQuizManager(t, "Sorry, I can't help with that.")

	quiz, err := qm.Generate(context.Background(), "Photosynthesis", 5)
	if quiz != nil {
		t.Fatalf("expected no quiz")
	}
	if !errors.Is(err, ErrUpstream) || !errors.Is(err, ErrMalformedOutput) {
		t.Fatalf("expected upstream malformed output error, got %v", err)
	}
	if n, _ := store.Len(context.Background()); n != 0 {
		t.Fatalf("expected no stored session, got %d", n)
	}
}

func TestGenerate_GeneratorFailure(t *testing.T) {
	gen := &scriptedGenerator{fail: map[string]error{quizMarker: errBoom}}
	qm, err := NewQuizManager(gen, NewMemoryStore(0), nil, nil, nil)
	if err != nil {
		t.Fatalf("NewQuizManager: %v", err)
	}
	if _, err := qm.Generate(context.Background(), "Photosynthesis", 5); !errors.Is(err, ErrUpstream) || !errors.Is(err, errBoom) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestGrade_AllCorrectAndAllWrong(t *testing.T) {
	qm, _, _ := newTestQuizManager(t, fiveQuestionQuiz)
	ctx := context.Background()

	quiz, err := qm.Generate(ctx, "Photosynthesis", 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	res, err := qm.Grade(ctx, quiz.Token, photosynthesisAnswers)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if res.Score != 100 || res.Correct != 5 {
		t.Fatalf("unexpected grade: score=%d correct=%d", res.Score, res.Correct)
	}
	if _, want := Remark(100); res.Remark != want {
		t.Fatalf("unexpected remark: got=%q want=%q", res.Remark, want)
	}

	quiz, err = qm.Generate(ctx, "Photosynthesis", 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	wrong := map[string]string{"1": "Helium", "2": "Nucleus", "3": "Melanin", "4": "Lactose", "5": "Argon"}
	res, err = qm.Grade(ctx, quiz.Token, wrong)
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if res.Score != 0 || res.Correct != 0 {
		t.Fatalf("unexpected grade: score=%d correct=%d", res.Score, res.Correct)
	}
	for _, d := range res.Details {
		if d.IsCorrect {
			t.Fatalf("question %s should be wrong", d.QuestionID)
		}
	}
}

func TestGrade_TokenIsSingleUse(t *testing.T) {
	qm, store, _ := newTestQuizManager(t, fiveQuestionQuiz)
	ctx := context.Background()

	quiz, err := qm.Generate(ctx, "Photosynthesis", 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := qm.Grade(ctx, quiz.Token, photosynthesisAnswers); err != nil {
		t.Fatalf("first Grade: %v", err)
	}
	if _, err := qm.Grade(ctx, quiz.Token, photosynthesisAnswers); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second grade, got %v", err)
	}
	if n, _ := store.Len(ctx); n != 0 {
		t.Fatalf("expected session to be consumed, got %d", n)
	}
}

func TestGrade_RejectsBadInput(t *testing.T) {
	qm, _, _ := newTestQuizManager(t, fiveQuestionQuiz)
	ctx := context.Background()

	if _, err := qm.Grade(ctx, "never-issued", map[string]string{"1": "a"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for fabricated token, got %v", err)
	}

	var fe *FieldError
	if _, err := qm.Grade(ctx, "", map[string]string{"1": "a"}); !errors.As(err, &fe) || fe.Field != "quiz_token" {
		t.Fatalf("expected missing quiz_token, got %v", err)
	}
	if _, err := qm.Grade(ctx, "token", nil); !errors.As(err, &fe) || fe.Field != "answers" {
		t.Fatalf("expected missing answers, got %v", err)
	}
}

func TestGradeQuiz_PartialScoreAndOrdering(t *testing.T) {
	key := AnswerKey{"1": "a", "2": "b", "10": "c"}
	res := GradeQuiz(key, map[string]string{"1": "a", "10": " c ", "99": "x"})

	if res.Total != 3 || res.Correct != 2 {
		t.Fatalf("unexpected counts: total=%d correct=%d", res.Total, res.Correct)
	}
	if res.Score != 66 {
		t.Fatalf("unexpected score: got=%d want=66", res.Score)
	}

	var ids []string
	for _, d := range res.Details {
		ids = append(ids, d.QuestionID)
	}
	if strings.Join(ids, ",") != "1,2,10" {
		t.Fatalf("unexpected detail order: got=%v", ids)
	}
	if res.Details[1].IsCorrect || res.Details[1].YourAnswer != "" {
		t.Fatalf("unanswered question should be wrong with empty answer: %+v", res.Details[1])
	}
}

func TestGradeQuiz_EmptyKey(t *testing.T) {
	res := GradeQuiz(AnswerKey{}, map[string]string{"1": "a"})
	if res.Score != 0 || res.Total != 0 || res.Details == nil {
		t.Fatalf("unexpected result for empty key: %+v", res)
	}
}

func TestRemarkBands(t *testing.T) {
	cases := []struct {
		score int
		want  RemarkBand
	}{
		{100, BandExcellent},
		{80, BandExcellent},
		{79, BandKeepPracticing},
		{50, BandKeepPracticing},
		{49, BandNeedsImprovement},
		{0, BandNeedsImprovement},
	}
	for _, tc := range cases {
		if got, _ := Remark(tc.score); got != tc.want {
			t.Fatalf("Remark(%d): got=%q want=%q", tc.score, got, tc.want)
		}
	}
}

func TestGrade_OnlyFirstQuestionAnswered(t *testing.T) {
	qm, _, _ := newTestQuizManager(t, fiveQuestionQuiz)
	ctx := context.Background()

	quiz, err := qm.Generate(ctx, "Photosynthesis", 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	first := quiz.Questions[0]
	res, err := qm.Grade(ctx, quiz.Token, map[string]string{strconv.Itoa(first.ID): first.Options[0]})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if res.Total != 3 || res.Correct > 1 {
		t.Fatalf("unexpected counts: total=%d correct=%d", res.Total, res.Correct)
	}
	if res.Score != res.Correct*100/3 {
		t.Fatalf("unexpected score: got=%d correct=%d", res.Score, res.Correct)
	}
}
