package store

import (
	"context"
	"sync"

	"github.com/portal-provas/exam-service/internal/models"
)

// MemoryStore keeps the snapshot in process memory. It backs tests and the
// embedded mode where durability across restarts is not required.
type MemoryStore struct {
	mu    sync.RWMutex
	state *models.State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith starts from a given snapshot instead of the seed.
func NewMemoryStoreWith(state *models.State) *MemoryStore {
	return &MemoryStore{state: state.Clone()}
}

func (s *MemoryStore) Load(_ context.Context) (*models.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return SeedState(), nil
	}
	return s.state.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, state *models.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.Clone()
	return nil
}
