package store

import (
	"context"
	"slices"
	"sync"
)

// Memory keeps the blob in process memory. Tests and the soak runner use it.
type Memory struct {
	mu     sync.Mutex
	data   []byte
	saved  bool
	writes int
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.saved {
		return nil, ErrNotFound
	}
	return slices.Clone(m.data), nil
}

func (m *Memory) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = slices.Clone(data)
	m.saved = true
	m.writes++
	return nil
}

// Writes reports how many times the slot was written.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Memory) Close() error { return nil }
