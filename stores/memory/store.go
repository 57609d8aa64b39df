package memory

import (
	"context"
	"sync"
)

// memStore keeps the folder id in process memory only. Useful for tests and
// ephemeral runs; the id does not survive a restart.
type memStore struct {
	mu sync.RWMutex
	id string
}

// NewStore creates a new in-memory store.
func NewStore() *memStore {
	return &memStore{}
}

func (s *memStore) Load(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id, nil
}

func (s *memStore) Save(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
	return nil
}
