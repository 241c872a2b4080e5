package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps documents in process memory.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[Collection]map[string]Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[Collection]map[string]Document),
	}
}

// Insert stores a copy of doc under a fresh uuid.
func (s *MemoryStore) Insert(ctx context.Context, collection Collection, doc Document) (string, error) {
	if err := checkInsert(collection, doc); err != nil {
		return "", err
	}

	id := uuid.NewString()
	stored := make(Document, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}
	stored["_id"] = id

	s.mu.Lock()
	defer s.mu.Unlock()
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]Document)
		s.collections[collection] = docs
	}
	docs[id] = stored
	return id, nil
}

// ListCollectionNames returns the collections that hold at least one document.
func (s *MemoryStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names, nil
}

// Get returns the stored document, if any.
func (s *MemoryStore) Get(collection Collection, id string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.collections[collection][id]
	return doc, ok
}

// Count returns how many documents a collection holds.
func (s *MemoryStore) Count(collection Collection) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}
