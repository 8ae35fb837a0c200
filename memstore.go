package learnhub

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"
)

// MemoryStore keeps everything in process memory
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]QuizSession
	queue    []string // tokens in issue order, used to sweep expired sessions

	articles []Article
	videos   []Video

	ttl time.Duration
	now func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]QuizSession),
		queue:    make([]string, 0),
		articles: make([]Article, 0),
		videos:   make([]Video, 0),
		ttl:      ttl,
		now:      time.Now,
	}
}

// PutSession stores session and sweeps expired ones
func (ms *MemoryStore) PutSession(_ context.Context, session QuizSession) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if session.CreatedAt.IsZero() {
		session.CreatedAt = ms.now()
	}
	ms.sweep()

	ms.sessions[session.Token] = session
	if ms.ttl > 0 {
		ms.queue = append(ms.queue, session.Token)
	}
	return nil
}

// sweep drops expired sessions from the front of the queue. Callers hold mu.
func (ms *MemoryStore) sweep() {
	now := ms.now()
	for len(ms.queue) > 0 {
		token := ms.queue[0]
		session, ok := ms.sessions[token]
		if ok && !expired(session.CreatedAt, ms.ttl, now) {
			return
		}
		delete(ms.sessions, token)
		ms.queue = ms.queue[1:]
	}
}

// TakeSession removes and returns the session for token
func (ms *MemoryStore) TakeSession(_ context.Context, token string) (QuizSession, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	session, ok := ms.sessions[token]
	if !ok {
		return QuizSession{}, ErrNotFound
	}
	delete(ms.sessions, token)

	if expired(session.CreatedAt, ms.ttl, ms.now()) {
		return QuizSession{}, ErrNotFound
	}
	return session, nil
}

// Len returns the number of sessions held, expired ones included until swept
func (ms *MemoryStore) Len(_ context.Context) (int, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.sessions), nil
}

// AddArticle appends article unless its link is already saved
func (ms *MemoryStore) AddArticle(_ context.Context, article Article) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if lo.ContainsBy(ms.articles, func(a Article) bool { return a.Link == article.Link }) {
		return false, nil
	}
	ms.articles = append(ms.articles, article)
	return true, nil
}

// AddVideo appends video unless its id is already saved
func (ms *MemoryStore) AddVideo(_ context.Context, video Video) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if lo.ContainsBy(ms.videos, func(v Video) bool { return v.ID == video.ID }) {
		return false, nil
	}
	ms.videos = append(ms.videos, video)
	return true, nil
}

// Articles returns a copy of the saved articles in insertion order
func (ms *MemoryStore) Articles(_ context.Context) ([]Article, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	articles := make([]Article, len(ms.articles))
	copy(articles, ms.articles)
	return articles, nil
}

// Videos returns a copy of the saved videos in insertion order
func (ms *MemoryStore) Videos(_ context.Context) ([]Video, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	videos := make([]Video, len(ms.videos))
	copy(videos, ms.videos)
	return videos, nil
}

func (ms *MemoryStore) Close() error {
	return nil
}
