package repository

import (
	"context"
	"maps"
	"sync"

	"github.com/nikolayk812/storefront-demo/internal/port"
)

type memoryStorage struct {
	mu    *sync.Mutex
	items map[string]string

	// inTx marks a view handed out by Atomically; it already holds mu.
	inTx bool
}

// NewMemory returns a process-local storage, mainly for tests.
func NewMemory() port.Storage {
	return &memoryStorage{
		mu:    &sync.Mutex{},
		items: map[string]string{},
	}
}

func (s *memoryStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	s.lock()
	defer s.unlock()

	value, ok := s.items[key]
	return value, ok, nil
}

func (s *memoryStorage) SetItem(_ context.Context, key, value string) error {
	s.lock()
	defer s.unlock()

	s.items[key] = value
	return nil
}

func (s *memoryStorage) RemoveItem(_ context.Context, keys ...string) error {
	s.lock()
	defer s.unlock()

	for _, key := range keys {
		delete(s.items, key)
	}
	return nil
}

// Atomically works on a copy of the items and publishes it only when fn
// succeeds, so a failed fn leaves the storage untouched.
func (s *memoryStorage) Atomically(_ context.Context, fn func(s port.Storage) error) error {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	view := &memoryStorage{
		mu:    s.mu,
		items: maps.Clone(s.items),
		inTx:  true,
	}

	if err := fn(view); err != nil {
		return err
	}

	s.items = view.items
	return nil
}

func (s *memoryStorage) lock() {
	if !s.inTx {
		s.mu.Lock()
	}
}

func (s *memoryStorage) unlock() {
	if !s.inTx {
		s.mu.Unlock()
	}
}
