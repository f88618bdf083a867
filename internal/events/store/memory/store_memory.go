package memory

import (
	"context"
	"sync"

	"redart/internal/events"
	id "redart/pkg/domain"
)

// InMemoryStore keeps emitted events in process, grouped by registration.
type InMemoryStore struct {
	mu     sync.RWMutex
	byRUID map[id.RUID][]events.Event
	all    []events.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byRUID: make(map[id.RUID][]events.Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byRUID[event.RUID] = append(s.byRUID[event.RUID], event)
	s.all = append(s.all, event)
	return nil
}

// ListByRUID returns the events about one registration in emission order.
func (s *InMemoryStore) ListByRUID(_ context.Context, ruid id.RUID) ([]events.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]events.Event{}, s.byRUID[ruid]...), nil
}

// ListAll returns every event in emission order.
func (s *InMemoryStore) ListAll(_ context.Context) ([]events.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]events.Event{}, s.all...), nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byRUID = make(map[id.RUID][]events.Event)
	s.all = nil
}
