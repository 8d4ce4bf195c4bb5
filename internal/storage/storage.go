package storage

import (
	"sync"
	"time"
)

// BrowseSession tracks which shopper profile a browser tab is acting as and
// whether feedback was left. Sessions are the only mutable server state; the
// catalog artifacts on disk are never touched.
type BrowseSession struct {
	ID           string    `json:"id"`
	ProfileName  string    `json:"profile_name"`
	GaveFeedback bool      `json:"gave_feedback"`
	Feedback     string    `json:"feedback,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type SessionStore struct {
	sessions map[string]*BrowseSession
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*BrowseSession),
	}
}

func (s *SessionStore) Get(sessionID string) (*BrowseSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

func (s *SessionStore) Set(sessionID string, session *BrowseSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session
}

func (s *SessionStore) GetAll() map[string]*BrowseSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*BrowseSession, len(s.sessions))
	for k, v := range s.sessions {
		result[k] = v
	}
	return result
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
