package store

import (
	"io/fs"
	"sync"
)

// MemBackend is an in-memory Backend used by tests.
type MemBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemBackend() *MemBackend {
	return &MemBackend{data: make(map[string][]byte)}
}

func (b *MemBackend) Read(name string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.data[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (b *MemBackend) Write(name string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[name] = data
	return nil
}
