package page

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/user/book-classifier/pkg/metrics"
)

type session struct {
	page     *Page
	lastSeen time.Time
}

// Store keeps one Page per browser session in memory.
type Store struct {
	api Analyzer
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewStore creates a store whose sessions expire after ttl of inactivity.
func NewStore(api Analyzer, ttl time.Duration) *Store {
	return &Store{
		api:      api,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Get returns the page for id, creating a fresh session when id is empty, unknown
// or expired. The returned id is the one the caller should keep using.
func (s *Store) Get(id string) (*Page, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sess, ok := s.sessions[id]; ok && now.Sub(sess.lastSeen) <= s.ttl {
		sess.lastSeen = now
		return sess.page, id
	}
	delete(s.sessions, id)

	id = uuid.NewString()
	s.sessions[id] = &session{page: New(s.api), lastSeen: now}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return s.sessions[id].page, id
}

// Sweep drops sessions idle for longer than the TTL and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return removed
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
