package learnhub

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var errBoom = errors.New("boom")

// scriptedGenerator answers prompts by substring match and records every prompt it saw
type scriptedGenerator struct {
	mu      sync.Mutex
	replies map[string]string
	fail    map[string]error
	prompts []string
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)

	for marker, err := range g.fail {
		if strings.Contains(prompt, marker) {
			return "", err
		}
	}
	for marker, reply := range g.replies {
		if strings.Contains(prompt, marker) {
			return reply, nil
		}
	}
	return "", errors.New("no scripted reply")
}

func (g *scriptedGenerator) promptsContaining(marker string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []string
	for _, p := range g.prompts {
		if strings.Contains(p, marker) {
			out = append(out, p)
		}
	}
	return out
}

type fakeArticles struct {
	mu       sync.Mutex
	articles []Article
	err      error
	langs    []string
}

func (f *fakeArticles) SearchArticles(_ context.Context, _ string, _ int, lang string) ([]Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.langs = append(f.langs, lang)
	return f.articles, f.err
}

type fakeVideos struct {
	mu     sync.Mutex
	videos []Video
	err    error
	langs  []string
}

func (f *fakeVideos) SearchVideos(_ context.Context, _ string, _ int, lang string) ([]Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.langs = append(f.langs, lang)
	return f.videos, f.err
}

const (
	shortMarker   = "concise, 2-3 sentence"
	longMarker    = "long, polished explanation"
	conceptMarker = "most important keywords"
	quizMarker    = "multiple choice questions about"
)

const conceptsReply = "Here you go:\n```json\n" + `{"concepts": [
	{"term": "Chlorophyll", "definition": "Green pigment that absorbs light."},
	{"term": "Glucose", "definition": "Sugar produced by photosynthesis."}
]}` + "\n```"

const fiveQuestionQuiz = "```json\n" + `{"quiz": [
	{"id": 1, "question": "What gas do plants absorb?", "options": ["Oxygen", "Carbon dioxide", "Nitrogen", "Helium"], "correct_answer": "Carbon dioxide"},
	{"id": 2, "question": "Where does photosynthesis occur?", "options": ["Mitochondria", "Nucleus", "Chloroplast", "Ribosome"], "correct_answer": "Chloroplast"},
	{"id": 3, "question": "Which pigment captures light?", "options": ["Chlorophyll", "Melanin", "Keratin", "Hemoglobin"], "correct_answer": "Chlorophyll"},
	{"id": 4, "question": "What sugar is produced?", "options": ["Sucrose", "Glucose", "Lactose", "Maltose"], "correct_answer": "Glucose"},
	{"id": 5, "question": "What is released as a by-product?", "options": ["Oxygen", "Methane", "Ammonia", "Argon"], "correct_answer": "Oxygen"}
]}` + "\n```"
