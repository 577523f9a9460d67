package tray

import (
	"context"
	"sync"
)

// SelectionStore keeps the selection between presentations for the retain and
// persist policies.
type SelectionStore interface {
	// Load returns the saved selection; ok is false when nothing is saved.
	Load(ctx context.Context) (sel Selection, ok bool, err error)
	Save(ctx context.Context, sel Selection) error
}

// MemoryStore is a SelectionStore that lives for the process lifetime.
type MemoryStore struct {
	mu    sync.Mutex
	sel   Selection
	saved bool
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements SelectionStore.
func (s *MemoryStore) Load(_ context.Context) (Selection, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel, s.saved, nil
}

// Save implements SelectionStore.
func (s *MemoryStore) Save(_ context.Context, sel Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = sel
	s.saved = true
	return nil
}
