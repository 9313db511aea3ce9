// Package sessions holds in-progress wizard sessions in memory. Sessions
// are short-lived and per-node; drafts that matter long term are written
// to the database only on submission.
package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eduadmin/enroll/internal/app/models"
	"github.com/eduadmin/enroll/internal/app/wizard"
	"github.com/eduadmin/enroll/internal/pkg/apperrors"
)

// Session is one registration attempt: the wizard state plus the state of
// the phone verification sub-flow. All access must go through WithLock so
// reads and transitions on the same session serialize.
type Session struct {
	ID        string
	Wizard    wizard.State
	Flow      models.VerificationFlowState
	FlowPhone string
	// VerificationID points at the pending OTP row while Flow is
	// AWAITING_CODE.
	VerificationID string
	CreatedAt      time.Time
	LastSeenAt     time.Time

	mu sync.Mutex
}

// WithLock runs fn while holding the session's lock. Concurrent events on
// one session are applied one at a time in arrival order.
func (s *Session) WithLock(fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastSeenAt = time.Now()
	return fn(s)
}

// Store is the concurrent session registry with idle expiry.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	logger   zerolog.Logger
	done     chan struct{}
	closed   sync.Once
}

// NewStore creates a store whose sessions expire after ttl of inactivity
// and starts the background sweeper.
func NewStore(ttl time.Duration, logger zerolog.Logger) *Store {
	st := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   logger,
		done:     make(chan struct{}),
	}
	go st.sweep()
	return st
}

// Create registers a fresh session with an empty draft and returns it.
func (st *Store) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:         uuid.New().String(),
		Wizard:     wizard.NewState(),
		Flow:       models.VerificationAwaitingPhone,
		CreatedAt:  now,
		LastSeenAt: now,
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	st.logger.Debug().Str("session_id", s.ID).Msg("Session created")
	return s
}

// Get returns the session for id or ErrSessionNotFound when it does not
// exist or has already expired.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return s, nil
}

// Delete drops a session. Dropping an unknown id is a no-op.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Close stops the background sweeper.
func (st *Store) Close() {
	st.closed.Do(func() { close(st.done) })
}

func (st *Store) sweep() {
	interval := st.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-st.done:
			return
		case now := <-ticker.C:
			st.expire(now)
		}
	}
}

func (st *Store) expire(now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, s := range st.sessions {
		if now.Sub(s.LastSeenAt) > st.ttl {
			delete(st.sessions, id)
			st.logger.Debug().Str("session_id", id).Msg("Session expired")
		}
	}
}
