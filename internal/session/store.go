package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexanderramin/cuesheet/internal/template"
)

// Store keeps live sessions in memory, keyed by random UUID. Sessions idle
// for longer than the TTL are dropped by Sweep.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewStore creates an empty store. A zero ttl disables eviction.
func NewStore(ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Create starts a new session seeded from preset.
func (st *Store) Create(preset template.Preset) *Session {
	s := New(uuid.NewString(), preset, st.now())

	st.mu.Lock()
	st.sessions[s.ID()] = s
	st.mu.Unlock()
	return s
}

// Get returns the session and refreshes its idle timer.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(st.now())
	return s, nil
}

// Delete discards a session.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(st.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes sessions idle since before now-TTL. Busy sessions are
// kept. Returns the number removed.
func (st *Store) Sweep(now time.Time) int {
	if st.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor calls Sweep every interval until ctx is done.
func (st *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	if st.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			if n := st.Sweep(t); n > 0 {
				st.logger.Debug("sessions evicted", zap.Int("count", n), zap.Int("live", st.Len()))
			}
		}
	}
}
