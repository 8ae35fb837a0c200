package learnhub

import (
	"context"
	"fmt"
	"time"
)

// SessionStore holds answer keys for issued quizzes
type SessionStore interface {
	// PutSession stores a new session under its token
	PutSession(ctx context.Context, session QuizSession) error
	// TakeSession removes and returns the session for token. Unknown, expired
	// and already taken tokens return ErrNotFound.
	TakeSession(ctx context.Context, token string) (QuizSession, error)
	// Len reports how many sessions are currently held
	Len(ctx context.Context) (int, error)
}

// ItemStore holds saved articles and videos, deduplicated by link and id
type ItemStore interface {
	// AddArticle appends article unless one with the same link exists.
	// It reports whether the article was added.
	AddArticle(ctx context.Context, article Article) (bool, error)
	// AddVideo appends video unless one with the same id exists
	AddVideo(ctx context.Context, video Video) (bool, error)
	Articles(ctx context.Context) ([]Article, error)
	Videos(ctx context.Context) ([]Video, error)
}

// Store is the process-wide state behind the service
type Store interface {
	SessionStore
	ItemStore
	Close() error
}

// OpenStore opens the store named by driver ("memory" or "sqlite"). Sessions
// older than ttl are treated as expired; zero keeps them until graded.
func OpenStore(driver, dsn string, ttl time.Duration) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemoryStore(ttl), nil
	case "sqlite", "sqlite3":
		return OpenSQLiteStore(dsn, ttl)
	default:
		return nil, fmt.Errorf("unknown store driver: %s", driver)
	}
}

func expired(createdAt time.Time, ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(createdAt) >= ttl
}
