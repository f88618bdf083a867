package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"redart/internal/opus/models"
	"redart/pkg/platform/sentinel"
)

type collectionEntry struct {
	collection *models.Collection
	tokens     []*models.Token
}

// InMemory keeps collections and their tokens in a map guarded by a mutex.
type InMemory struct {
	mu          sync.RWMutex
	collections map[uuid.UUID]*collectionEntry
}

func NewInMemory() *InMemory {
	return &InMemory{collections: make(map[uuid.UUID]*collectionEntry)}
}

func (s *InMemory) CreateCollection(_ context.Context, c *models.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[c.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.collections[c.ID] = &collectionEntry{collection: c.Clone()}
	return nil
}

func (s *InMemory) FindCollection(_ context.Context, collectionID uuid.UUID) (*models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.collections[collectionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return entry.collection.Clone(), nil
}

// AppendToken assigns the next token id of the collection to t and stores it.
func (s *InMemory) AppendToken(_ context.Context, t *models.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.collections[t.CollectionID]
	if !ok {
		return sentinel.ErrNotFound
	}
	t.TokenID = uint64(len(entry.tokens)) + 1
	stored := *t
	entry.tokens = append(entry.tokens, &stored)
	return nil
}

func (s *InMemory) FindToken(_ context.Context, collectionID uuid.UUID, tokenID uint64) (*models.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.collections[collectionID]
	if !ok || tokenID == 0 || tokenID > uint64(len(entry.tokens)) {
		return nil, sentinel.ErrNotFound
	}
	t := *entry.tokens[tokenID-1]
	return &t, nil
}

func (s *InMemory) CountTokens(_ context.Context, collectionID uuid.UUID) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.collections[collectionID]
	if !ok {
		return 0, sentinel.ErrNotFound
	}
	return uint64(len(entry.tokens)), nil
}
