package learnhub

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultSQLiteDSN is a shared in-memory database that lives as long as the process
const DefaultSQLiteDSN = "file:learnhub?mode=memory&cache=shared"

// SQLiteStore keeps sessions and saved items in SQLite
type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenSQLiteStore opens dsn and creates the tables
func OpenSQLiteStore(dsn string, ttl time.Duration) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = DefaultSQLiteDSN
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A shared-cache memory database disappears with its last connection.
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db, ttl: ttl, now: time.Now}
	if err := store.CreateTables(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTables creates the necessary tables if they don't exist
func (s *SQLiteStore) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS quiz_sessions (
			token TEXT PRIMARY KEY,
			answer_key TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS quiz_sessions_created_at ON quiz_sessions (created_at)`,
		`CREATE TABLE IF NOT EXISTS saved_articles (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			link TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			snippet TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS saved_videos (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			thumbnail TEXT NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %s: %w", query, err)
		}
	}
	return nil
}

// PutSession stores session and deletes expired ones
func (s *SQLiteStore) PutSession(ctx context.Context, session QuizSession) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = s.now()
	}
	keyJSON, err := answerKeyToJSON(session.AnswerKey)
	if err != nil {
		return err
	}

	if s.ttl > 0 {
		cutoff := s.now().Add(-s.ttl).UnixNano()
		if _, err := s.db.ExecContext(ctx, "DELETE FROM quiz_sessions WHERE created_at <= ?", cutoff); err != nil {
			return fmt.Errorf("failed to sweep quiz sessions: %w", err)
		}
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO quiz_sessions (token, answer_key, created_at) VALUES (?, ?, ?)",
		session.Token, keyJSON, session.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to store quiz session: %w", err)
	}
	return nil
}

// TakeSession deletes the session row and returns what it held
func (s *SQLiteStore) TakeSession(ctx context.Context, token string) (QuizSession, error) {
	var (
		keyJSON   string
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx,
		"DELETE FROM quiz_sessions WHERE token = ? RETURNING answer_key, created_at",
		token,
	).Scan(&keyJSON, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return QuizSession{}, ErrNotFound
		}
		return QuizSession{}, fmt.Errorf("failed to take quiz session: %w", err)
	}

	session := QuizSession{Token: token, CreatedAt: time.Unix(0, createdAt)}
	if expired(session.CreatedAt, s.ttl, s.now()) {
		return QuizSession{}, ErrNotFound
	}
	session.AnswerKey, err = jsonToAnswerKey(keyJSON)
	if err != nil {
		return QuizSession{}, err
	}
	return session, nil
}

// Len counts stored sessions
func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM quiz_sessions").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count quiz sessions: %w", err)
	}
	return n, nil
}

// AddArticle inserts article unless its link is already saved
func (s *SQLiteStore) AddArticle(ctx context.Context, article Article) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO saved_articles (link, title, snippet) VALUES (?, ?, ?)",
		article.Link, article.Title, article.Snippet,
	)
	if err != nil {
		return false, fmt.Errorf("failed to save article: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to save article: %w", err)
	}
	return n > 0, nil
}

// AddVideo inserts video unless its id is already saved
func (s *SQLiteStore) AddVideo(ctx context.Context, video Video) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO saved_videos (id, title, thumbnail) VALUES (?, ?, ?)",
		video.ID, video.Title, video.Thumbnail,
	)
	if err != nil {
		return false, fmt.Errorf("failed to save video: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to save video: %w", err)
	}
	return n > 0, nil
}

// Articles retrieves all saved articles in insertion order
func (s *SQLiteStore) Articles(ctx context.Context) ([]Article, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT title, link, snippet FROM saved_articles ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to get articles: %w", err)
	}
	defer rows.Close()

	articles := make([]Article, 0)
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.Title, &a.Link, &a.Snippet); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}
	return articles, nil
}

// Videos retrieves all saved videos in insertion order
func (s *SQLiteStore) Videos(ctx context.Context) ([]Video, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, thumbnail FROM saved_videos ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to get videos: %w", err)
	}
	defer rows.Close()

	videos := make([]Video, 0)
	for rows.Next() {
		var v Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Thumbnail); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}
	return videos, nil
}

func answerKeyToJSON(key AnswerKey) (string, error) {
	data, err := json.Marshal(key)
	if err != nil {
		return "", fmt.Errorf("failed to marshal answer key: %w", err)
	}
	return string(data), nil
}

func jsonToAnswerKey(data string) (AnswerKey, error) {
	var key AnswerKey
	if err := json.Unmarshal([]byte(data), &key); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answer key: %w", err)
	}
	return key, nil
}
