package main

import (
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "learnhub-session"
	historyKey  = "search_history"
	maxHistory  = 10
)

// SearchHistory remembers each browser's recent topics in a signed cookie
type SearchHistory struct {
	store sessions.Store
}

// NewSearchHistory creates a cookie-backed history. An empty secret gets a
// random key, so history does not survive a restart.
func NewSearchHistory(secret string) *SearchHistory {
	key := []byte(secret)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
	}
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SearchHistory{store: store}
}

// Topics returns the caller's recent topics, newest first
func (h *SearchHistory) Topics(r *http.Request) []string {
	session, _ := h.store.Get(r, sessionName)
	topics, _ := session.Values[historyKey].([]string)
	if topics == nil {
		return []string{}
	}
	return topics
}

// Record puts topic at the front of the caller's history
func (h *SearchHistory) Record(w http.ResponseWriter, r *http.Request, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil
	}

	session, _ := h.store.Get(r, sessionName)
	previous, _ := session.Values[historyKey].([]string)

	topics := make([]string, 0, maxHistory)
	topics = append(topics, topic)
	for _, t := range previous {
		if len(topics) == maxHistory {
			break
		}
		if !strings.EqualFold(t, topic) {
			topics = append(topics, t)
		}
	}

	session.Values[historyKey] = topics
	return session.Save(r, w)
}
