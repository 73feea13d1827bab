package session

import (
	"context"
	"sync"

	"github.com/kokomatto/portalauth/signal"
)

// MemoryStore is a process-local Store with the same notification contract
// as RedisStore. Used by tests and single-process embedding.
type MemoryStore struct {
	mu      sync.RWMutex
	current Session
	hub     *signal.Hub
}

// NewMemoryStore creates an empty MemoryStore holding the guest session.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		current: Guest(),
		hub:     signal.NewHub(),
	}
}

// Get returns the current session.
func (s *MemoryStore) Get(ctx context.Context) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, nil
}

// Set replaces the session and runs every subscriber before returning.
func (s *MemoryStore) Set(ctx context.Context, sess Session) error {
	sess = sess.Normalize()

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	s.hub.Emit(Encode(sess))
	return nil
}

// Clear resets to guest and runs every subscriber before returning.
func (s *MemoryStore) Clear(ctx context.Context) error {
	return s.Set(ctx, Guest())
}

// Subscribe registers fn for change notices.
func (s *MemoryStore) Subscribe(fn func(Session)) func() {
	if fn == nil {
		return func() {}
	}
	return s.hub.Subscribe(func(payload []byte) {
		sess, err := Decode(payload)
		if err != nil {
			sess = Guest()
		}
		fn(sess)
	})
}

// Broadcast re-announces the current session without changing it.
func (s *MemoryStore) Broadcast(ctx context.Context) error {
	s.mu.RLock()
	sess := s.current
	s.mu.RUnlock()

	s.hub.Emit(Encode(sess))
	return nil
}

// Close is a no-op; MemoryStore holds no background resources.
func (s *MemoryStore) Close() error {
	return nil
}
