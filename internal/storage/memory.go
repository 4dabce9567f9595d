package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/barmate/internal/domain"
	"github.com/hammamikhairi/barmate/internal/logger"
)

// Compile-time interface check.
var _ domain.KeyValueStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory key/value store. Safe for concurrent access.
// Nothing survives the process.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
	log  *logger.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		docs: make(map[string][]byte),
		log:  log,
	}
}

// Get returns a copy of the stored bytes.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), doc...), nil
}

// Put stores a copy of value. Overwrites if the key already exists.
func (s *MemoryStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("memory: put %s (%d bytes)", key, len(value))
	s.docs[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes a key. Missing keys are not an error.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, key)
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
