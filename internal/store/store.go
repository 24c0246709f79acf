package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

// Backend persists raw collection payloads by name. Read returns an error
// satisfying errors.Is(err, fs.ErrNotExist) when the collection has never
// been written.
type Backend interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
}

// Collection is a named, whole-collection-at-a-time persisted list of
// records. Every mutation is a full read-modify-write cycle; Update holds
// the collection lock across the whole cycle so concurrent handlers
// serialize instead of losing writes.
type Collection[T any] struct {
	name    string
	backend Backend
	mu      sync.Mutex
}

func NewCollection[T any](backend Backend, name string) *Collection[T] {
	return &Collection[T]{name: name, backend: backend}
}

// Load returns all records in the collection, creating it empty if it does
// not exist yet.
func (c *Collection[T]) Load() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Save overwrites the collection with the given records.
func (c *Collection[T]) Save(records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(records)
}

// Update applies fn to the current records and persists the result. The
// lock is held for the full read-modify-write, so fn must not call back
// into the collection.
func (c *Collection[T]) Update(fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}
	records, err = fn(records)
	if err != nil {
		return err
	}
	return c.save(records)
}

func (c *Collection[T]) load() ([]T, error) {
	data, err := c.backend.Read(c.name)
	if errors.Is(err, fs.ErrNotExist) {
		if err := c.save(nil); err != nil {
			return nil, err
		}
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", c.name, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", c.name, err)
	}
	return records, nil
}

func (c *Collection[T]) save(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", c.name, err)
	}
	if err := c.backend.Write(c.name, data); err != nil {
		return fmt.Errorf("store: write %s: %w", c.name, err)
	}
	return nil
}

// NextID allocates the next record id: max of the existing ids plus one, or
// 1 for an empty collection. Ids are never reused after deletion, so gaps
// are expected.
func NextID[T any](records []T, id func(T) int) int {
	next := 1
	for _, r := range records {
		if id(r) >= next {
			next = id(r) + 1
		}
	}
	return next
}
