package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionRegistry holds every live session of the process, keyed by the
// id stored in the session cookie
type SessionRegistry struct {
	log         *slog.Logger
	idleTimeout time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// RegistryOption customizes a SessionRegistry
type RegistryOption func(*SessionRegistry)

// WithClock replaces time.Now, for sessions and for idle tracking
func WithClock(now func() time.Time) RegistryOption {
	return func(r *SessionRegistry) {
		r.now = now
	}
}

// NewSessionRegistry creates an empty registry. Sessions untouched for
// longer than idleTimeout are destroyed by Sweep.
func NewSessionRegistry(log *slog.Logger, idleTimeout time.Duration, opts ...RegistryOption) *SessionRegistry {
	r := &SessionRegistry{
		log:         log,
		idleTimeout: idleTimeout,
		now:         time.Now,
		sessions:    make(map[uuid.UUID]*Session),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// InitializeIfAbsent returns the session for id, creating an empty one on
// first access. An existing session is never reset, only marked active
// so a concurrent Sweep cannot expire it mid-request.
func (r *SessionRegistry) InitializeIfAbsent(id uuid.UUID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.sessions[id]; ok {
		sess.touch()
		return sess, false
	}
	sess := newSession(id, r.now)
	r.sessions[id] = sess
	r.log.Debug("session created", "session_id", id)
	return sess, true
}

// Get returns the session for id without creating it
func (r *SessionRegistry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

// Len returns the number of live sessions
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep destroys sessions idle since before now-idleTimeout and returns
// how many were removed
func (r *SessionRegistry) Sweep(now time.Time) int {
	cutoff := now.Add(-r.idleTimeout)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, sess := range r.sessions {
		if sess.idleSince().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.log.Info("expired idle sessions", "removed", removed, "remaining", len(r.sessions))
	}
	return removed
}

// Run sweeps idle sessions every interval until ctx is done
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Debug("session sweeper stopped")
			return
		case <-ticker.C:
			r.Sweep(r.now())
		}
	}
}
