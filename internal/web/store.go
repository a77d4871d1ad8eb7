package web

import (
	"sync"
	"time"

	"github.com/BerylCAtieno/social-content-agent/internal/models"
)

const sessionTTL = 24 * time.Hour

type session struct {
	state    models.AppState
	cycle    uint64
	lastSeen time.Time
}

// sessionStore keeps the current AppState of each browser session in memory.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

func newStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session), now: time.Now}
}

func (s *sessionStore) get(id string) models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return models.AppState{}
	}
	now := s.now()
	if now.Sub(sess.lastSeen) > sessionTTL {
		delete(s.sessions, id)
		return models.AppState{}
	}
	sess.lastSeen = now
	return sess.state
}

// reset clears all three platforms ahead of a new generation cycle and
// returns the cycle number that a later set must present.
func (s *sessionStore) reset(id string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{}
		s.sessions[id] = sess
	}
	sess.cycle++
	sess.state = models.AppState{}
	sess.lastSeen = now
	s.prune(now)
	return sess.cycle
}

// set stores the result of a cycle. Results of a cycle that was superseded
// by a later reset are dropped; set reports whether the state was stored.
func (s *sessionStore) set(id string, cycle uint64, state models.AppState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || sess.cycle != cycle {
		return false
	}
	sess.state = state
	sess.lastSeen = s.now()
	return true
}

func (s *sessionStore) prune(now time.Time) {
	for k, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > sessionTTL {
			delete(s.sessions, k)
		}
	}
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
