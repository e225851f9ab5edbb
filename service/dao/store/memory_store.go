package store

import (
	"context"
	"sync"

	"github.com/viant/conveyor/service/dao"
)

// MemoryStore is a generic in-memory implementation of dao.Service keeping
// entities of type *T under a comparable key K extracted by keyOf.
//
// Concrete DAOs embed it to avoid rewriting identical Save/Load/Delete/List
// plumbing per entity type; the scenario DAO also uses it as its parse cache.
// It carries no entity-specific behaviour such as state filtering, so
// higher-level DAOs override List when they need more.
type MemoryStore[K comparable, T any] struct {
	mu      sync.RWMutex
	entries map[K]*T
	keyOf   func(*T) K
}

// NewMemoryStore creates a store; keyOf extracts the entity key, usually the
// ID field.
func NewMemoryStore[K comparable, T any](keyOf func(*T) K) *MemoryStore[K, T] {
	return &MemoryStore[K, T]{
		entries: make(map[K]*T),
		keyOf:   keyOf,
	}
}

// Save stores or overwrites an entity; nil entities are ignored since callers
// validate beforehand.
func (s *MemoryStore[K, T]) Save(_ context.Context, entity *T) error {
	if entity == nil {
		return nil
	}
	key := s.keyOf(entity)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entity
	return nil
}

// Load returns the entity stored under key; a missing key yields (nil, nil)
// so callers can treat absence as a cache miss.
func (s *MemoryStore[K, T]) Load(_ context.Context, key K) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entity, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return entity, nil
}

// Delete removes the entity stored under key.
func (s *MemoryStore[K, T]) Delete(_ context.Context, key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// List returns every stored entity in unspecified order.
func (s *MemoryStore[K, T]) List(_ context.Context, _ ...*dao.Parameter) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*T, 0, len(s.entries))
	for _, entity := range s.entries {
		out = append(out, entity)
	}
	return out, nil
}
