package settings

import (
	"context"
	"sync"
)

// Store persists settings snapshots.
//
// Load returns a normalised snapshot; an empty store yields Defaults().
// Callers own the returned value and may edit it before passing it to Save.
type Store interface {
	Load(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}

// MemoryStore is an in-process Store, mainly for tests and embedding.
type MemoryStore struct {
	mu      sync.Mutex
	current *Settings
}

// NewMemoryStore returns a MemoryStore holding a copy of initial, or the
// defaults when initial is nil.
func NewMemoryStore(initial *Settings) *MemoryStore {
	if initial == nil {
		initial = Defaults()
	}
	c := initial.Clone()
	c.Normalize()
	return &MemoryStore{current: c}
}

// Load implements Store.
func (m *MemoryStore) Load(ctx context.Context) (*Settings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Clone(), nil
}

// Save implements Store.
func (m *MemoryStore) Save(ctx context.Context, s *Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c := s.Clone()
	c.Normalize()
	m.mu.Lock()
	m.current = c
	m.mu.Unlock()
	return nil
}
