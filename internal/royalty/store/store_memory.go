package store

import (
	"context"
	"sync"

	"redart/internal/royalty/models"
	id "redart/pkg/domain"
	"redart/pkg/platform/sentinel"
)

// InMemory keeps royalty chains in a map guarded by a mutex.
type InMemory struct {
	mu     sync.RWMutex
	chains map[id.RUID]*models.Chain
}

func NewInMemory() *InMemory {
	return &InMemory{chains: make(map[id.RUID]*models.Chain)}
}

func (s *InMemory) Create(_ context.Context, chain *models.Chain) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.chains[chain.RUID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.chains[chain.RUID] = chain.Clone()
	return nil
}

func (s *InMemory) FindByRUID(_ context.Context, ruid id.RUID) (*models.Chain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chain, ok := s.chains[ruid]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return chain.Clone(), nil
}

func (s *InMemory) Exists(_ context.Context, ruid id.RUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.chains[ruid]
	return ok, nil
}
