package cart

import (
	"context"
	"sync"

	"lrkr/internal/domain"
)

// Persister receives the full line set after every mutation.
type Persister interface {
	Persist(ctx context.Context, lines []Line) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(ctx context.Context, lines []Line) error

func (f PersisterFunc) Persist(ctx context.Context, lines []Line) error { return f(ctx, lines) }

// Event is emitted to listeners after a mutation has been persisted.
type Event struct {
	Kind      ActionKind `json:"kind"`
	ProductID string     `json:"productId,omitempty"`
	Quantity  int        `json:"quantity,omitempty"`
	ItemCount int        `json:"itemCount"`
	Total     float64    `json:"total"`
}

type Listener func(Event)

type Option func(*Store)

// WithPersister sets where lines are written after each mutation.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// Store is the in-memory authority over one cart's lines.
type Store struct {
	mu        sync.Mutex
	lines     []Line
	persister Persister

	lmu       sync.Mutex
	nextID    int
	listeners map[int]Listener
}

// NewStore builds a store seeded with lines, usually the result of Adapter.Load.
func NewStore(lines []Line, opts ...Option) *Store {
	s := &Store{lines: cloneLines(lines), listeners: map[int]Listener{}}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Subscribe registers l for change events and returns a func that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.lmu.Unlock()
	return func() {
		s.lmu.Lock()
		delete(s.listeners, id)
		s.lmu.Unlock()
	}
}

func (s *Store) AddItem(ctx context.Context, p domain.Product, qty int) error {
	return s.dispatch(ctx, Add(p, qty))
}

func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	return s.dispatch(ctx, Remove(productID))
}

func (s *Store) UpdateQuantity(ctx context.Context, productID string, qty int) error {
	return s.dispatch(ctx, Update(productID, qty))
}

func (s *Store) Clear(ctx context.Context) error {
	return s.dispatch(ctx, Clear())
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.lines)
}

func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Total(s.lines)
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ItemCount(s.lines)
}

// dispatch applies a, then persists, then notifies. A persistence error is
// returned to the caller but the in-memory lines keep the new state.
func (s *Store) dispatch(ctx context.Context, a Action) error {
	s.mu.Lock()
	next := Apply(s.lines, a)
	s.lines = next
	var err error
	if s.persister != nil {
		err = s.persister.Persist(ctx, cloneLines(next))
	}
	ev := Event{Kind: a.Kind, ProductID: a.ProductID, ItemCount: ItemCount(next), Total: Total(next)}
	if i := indexOf(next, a.ProductID); i >= 0 {
		ev.Quantity = next[i].Quantity
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.notify(ev)
	return nil
}

func (s *Store) notify(ev Event) {
	s.lmu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.lmu.Unlock()
	for _, l := range ls {
		l(ev)
	}
}
