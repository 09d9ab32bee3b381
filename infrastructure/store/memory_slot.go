package store

import (
	"context"
	"sync"
)

// MemorySlot mantém o conteúdo apenas em memória
type MemorySlot struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (m *MemorySlot) Read(_ context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemorySlot) Write(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = append([]byte(nil), data...)
	return nil
}

func (m *MemorySlot) Close() error {
	return nil
}
