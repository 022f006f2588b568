package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/certquiz-bot/internal/domain/entities"
)

// SessionStorage provides in-memory storage for quiz sessions by chat ID.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*entities.Session
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]*entities.Session),
	}
}

// Get returns a copy of the session for chatID.
func (s *SessionStorage) Get(chatID int64) (*entities.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return nil, false
	}
	return sess.Clone(), true
}

// Store saves a copy of session under its chat ID.
func (s *SessionStorage) Store(session *entities.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ChatID] = session.Clone()
}

// Update applies fn to a copy of the chat's session under the write lock.
// fn gets nil when the chat has no session yet and returns the session to
// keep. Nothing is stored when fn fails.
func (s *SessionStorage) Update(chatID int64, fn func(sess *entities.Session) (*entities.Session, error)) (*entities.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current *entities.Session
	if sess, ok := s.sessions[chatID]; ok {
		current = sess.Clone()
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}

	s.sessions[chatID] = next.Clone()
	return next.Clone(), nil
}

// DeleteIdle removes sessions not updated since before and returns how many were removed.
func (s *SessionStorage) DeleteIdle(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(before) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
