package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dvloznov/partner-ledger/internal/store"
)

type entry struct {
	data      []byte
	updatedAt time.Time
}

// Store is an in-memory implementation of store.DocumentStore.
// It is safe for concurrent use. Data is lost on restart, so it suits tests,
// demos and the CLI against a restored backup.
type Store struct {
	mu   sync.RWMutex
	docs map[store.Kind]map[string]entry
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		docs: make(map[store.Kind]map[string]entry),
	}
}

// Put implements store.DocumentStore.
func (s *Store) Put(ctx context.Context, kind store.Kind, id string, data []byte) error {
	if id == "" {
		return fmt.Errorf("document ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.docs[kind]
	if !ok {
		byID = make(map[string]entry)
		s.docs[kind] = byID
	}

	// Copy to avoid external modifications
	byID[id] = entry{data: append([]byte(nil), data...), updatedAt: time.Now()}
	return nil
}

// Get implements store.DocumentStore.
func (s *Store) Get(ctx context.Context, kind store.Kind, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.docs[kind][id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), e.data...), nil
}

// List implements store.DocumentStore.
func (s *Store) List(ctx context.Context, kind store.Kind) ([]store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := s.docs[kind]
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]store.Document, 0, len(ids))
	for _, id := range ids {
		e := byID[id]
		result = append(result, store.Document{
			Kind:      kind,
			ID:        id,
			Data:      append([]byte(nil), e.data...),
			UpdatedAt: e.updatedAt,
		})
	}
	return result, nil
}

// Delete implements store.DocumentStore.
func (s *Store) Delete(ctx context.Context, kind store.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[kind][id]; !ok {
		return store.ErrNotFound
	}
	delete(s.docs[kind], id)
	return nil
}

// Close implements store.DocumentStore.
func (s *Store) Close() error {
	return nil
}

// Ensure Store implements store.DocumentStore.
var _ store.DocumentStore = (*Store)(nil)
