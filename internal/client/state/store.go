package state

import "sync"

// Store owns the current State. Apply runs the reducer under a single mutex
// and notifies subscribers with the resulting snapshot.
type Store struct {
	mu          sync.Mutex
	state       State
	subscribers []func(State)
}

func NewStore() *Store {
	return &Store{}
}

// State returns a snapshot of the current state. The contained task slice is
// replaced wholesale by the reducer, never mutated in place, so sharing it
// with callers is safe.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Apply runs the reducer and notifies subscribers. Subscribers are called
// synchronously, outside the lock, in subscription order.
func (s *Store) Apply(a Action) State {
	s.mu.Lock()
	s.state = reduce(s.state, a)
	next := s.state
	subs := append(([]func(State))(nil), s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Subscribe registers fn to be called after every applied action.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}
