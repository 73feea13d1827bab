package verification

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store for tests and single-process
// embedding.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Status
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Status)}
}

// Get reads the subject's status; absent subjects read as StatusPending.
func (s *MemoryStore) Get(ctx context.Context, subject string) (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[subject], nil
}

// Set overwrites the subject's status.
func (s *MemoryStore) Set(ctx context.Context, subject string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[subject] = status
	return nil
}
