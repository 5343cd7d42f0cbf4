package domain

import (
	"strings"
	"sync"
	"time"
)

// Session remembers guest details between chat requests.
type Session struct {
	Name              string
	Phone             string
	LastReservationID string
	LastSeen          time.Time
}

// SessionStore keeps sessions in memory keyed by the client-chosen session id.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewSessionStore(now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{sessions: make(map[string]*Session), now: now}
}

// Get returns a copy of the session, creating it on first use.
func (s *SessionStore) Get(id string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.touchLocked(id)
}

// Update applies fn to the session under the store lock.
func (s *SessionStore) Update(id string, fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.touchLocked(id))
}

// Prune removes sessions idle for longer than maxIdle and returns how many were dropped.
func (s *SessionStore) Prune(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	cutoff := s.now().Add(-maxIdle)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if session.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) touchLocked(id string) *Session {
	id = strings.TrimSpace(id)
	session, ok := s.sessions[id]
	if !ok {
		session = &Session{}
		s.sessions[id] = session
	}
	session.LastSeen = s.now()
	return session
}
