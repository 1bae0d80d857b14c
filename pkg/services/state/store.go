package state

import (
	"sync"

	"github.com/de-tools/csr-atlas/pkg/models/domain"
)

type Listener func(action Action, next State)

// Store owns the state tree. Dispatch applies reducers one at a time; readers
// get immutable snapshots.
type Store struct {
	mu    sync.RWMutex
	state State

	lmu       sync.Mutex
	listeners map[int]Listener
	nextID    int
}

func NewStore(initial State) *Store {
	if initial.Drafts == nil {
		initial.Drafts = map[string]SavedDraft{}
	}
	if initial.Operations == nil {
		initial.Operations = map[string]domain.Operation{}
	}
	return &Store{
		state:     initial,
		listeners: make(map[int]Listener),
	}
}

// Dispatch applies action and notifies listeners with the resulting state.
//
// TODO: finished operations are never evicted from State.Operations; add a
// retention window once real backends produce enough traffic to matter.
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	next := Reduce(s.state, action)
	s.state = next
	s.mu.Unlock()

	s.lmu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.lmu.Unlock()

	for _, l := range listeners {
		l(action, next)
	}
	return next
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers l for every subsequent dispatch and returns a function
// that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.lmu.Lock()
	defer s.lmu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.lmu.Lock()
		defer s.lmu.Unlock()
		delete(s.listeners, id)
	}
}
