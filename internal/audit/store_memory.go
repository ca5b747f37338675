package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps the audit trail in process memory, newest last. It is
// bounded so a long-running service cannot grow without limit.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
	max    int
}

func NewInMemoryStore(max int) *InMemoryStore {
	if max <= 0 {
		max = 10_000
	}
	return &InMemoryStore{max: max}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) > s.max {
		s.events = s.events[len(s.events)-s.max:]
	}
	return nil
}

// ListRecent returns the most recent limit events, newest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.events)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Event, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}
