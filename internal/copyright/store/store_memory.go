package store

import (
	"context"
	"sync"

	"redart/internal/copyright/models"
	id "redart/pkg/domain"
	"redart/pkg/platform/sentinel"
)

// InMemory keeps registrations in a map. The mutex makes check-and-insert
// atomic, so concurrent claims on one RUID have exactly one winner.
type InMemory struct {
	mu      sync.RWMutex
	records map[id.RUID]*models.Registration
	seq     uint64
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[id.RUID]*models.Registration)}
}

// Create stores reg and assigns its sequence. Returns sentinel.ErrAlreadyUsed
// when the RUID is taken.
func (s *InMemory) Create(_ context.Context, reg *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[reg.RUID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.seq++
	reg.Sequence = s.seq
	s.records[reg.RUID] = reg.Clone()
	return nil
}

func (s *InMemory) FindByRUID(_ context.Context, ruid id.RUID) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reg, ok := s.records[ruid]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return reg.Clone(), nil
}

func (s *InMemory) Exists(_ context.Context, ruid id.RUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[ruid]
	return ok, nil
}
