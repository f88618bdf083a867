package store

import (
	"context"
	"sync"

	"redart/internal/graph/models"
	id "redart/pkg/domain"
	"redart/pkg/platform/sentinel"
)

type edgeKey struct {
	derivative id.RUID
	origin     id.RUID
}

// InMemory keeps both directions of the graph as append-only slices, so
// link order is also list order.
type InMemory struct {
	mu          sync.RWMutex
	edges       map[edgeKey]struct{}
	origins     map[id.RUID][]id.RUID
	derivatives map[id.RUID][]id.RUID
}

func NewInMemory() *InMemory {
	return &InMemory{
		edges:       make(map[edgeKey]struct{}),
		origins:     make(map[id.RUID][]id.RUID),
		derivatives: make(map[id.RUID][]id.RUID),
	}
}

// Create appends the edge. Returns sentinel.ErrConflict when it already exists.
func (s *InMemory) Create(_ context.Context, edge *models.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := edgeKey{derivative: edge.Derivative, origin: edge.Origin}
	if _, ok := s.edges[key]; ok {
		return sentinel.ErrConflict
	}
	s.edges[key] = struct{}{}
	s.origins[edge.Derivative] = append(s.origins[edge.Derivative], edge.Origin)
	s.derivatives[edge.Origin] = append(s.derivatives[edge.Origin], edge.Derivative)
	return nil
}

func (s *InMemory) ListOrigins(_ context.Context, derivative id.RUID) ([]id.RUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]id.RUID{}, s.origins[derivative]...), nil
}

func (s *InMemory) ListDerivatives(_ context.Context, origin id.RUID) ([]id.RUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]id.RUID{}, s.derivatives[origin]...), nil
}
