package learnhub

import "time"

// TopicQuery is a single search request for the aggregator
type TopicQuery struct {
	Topic        string `json:"topic"`
	LanguageCode string `json:"language"`
}

// Concept is one term/definition pair pulled out of a long explanation
type Concept struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Video is a video search hit, also the record kept when a video is saved
type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

// Article is a web search hit, also the record kept when an article is saved
type Article struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// AggregatedResult is everything gathered for one topic
type AggregatedResult struct {
	ShortExplanation string    `json:"aiExplanationShort"`
	LongExplanation  string    `json:"aiExplanationLong"`
	KeyConcepts      []Concept `json:"keyConcepts"`
	Videos           []Video   `json:"youtubeVideos"`
	Articles         []Article `json:"articles"`
}

// Question is a generated multiple choice question, answer included
type Question struct {
	ID            int      `json:"id"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// ClientQuestion is the part of a question that is safe to send to the browser
type ClientQuestion struct {
	ID      int      `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

// AnswerKey maps a question id (as a string) to its correct answer text
type AnswerKey map[string]string

// QuizSession is an issued quiz waiting to be graded
type QuizSession struct {
	Token     string    `json:"token"`
	AnswerKey AnswerKey `json:"answer_key"`
	CreatedAt time.Time `json:"created_at"`
}

// GeneratedQuiz is what the caller gets back from quiz generation
type GeneratedQuiz struct {
	Token     string           `json:"quiz_token"`
	Questions []ClientQuestion `json:"quiz"`
}

// QuestionResult is the grading outcome for one question
type QuestionResult struct {
	QuestionID    string `json:"question_id"`
	YourAnswer    string `json:"your_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// GradeResult is the outcome of grading a whole quiz
type GradeResult struct {
	Score   int              `json:"score"`
	Correct int              `json:"correct"`
	Total   int              `json:"total"`
	Details []QuestionResult `json:"details"`
	Remark  string           `json:"remark"`
}

// GenerationRequest represents a request to generate a quiz
type GenerationRequest struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
}

// DefaultNumQuestions is used when a request does not ask for a specific count
const DefaultNumQuestions = 5
