package services

import (
	"context"
	"errors"
	"fmt"

	"lrkr/internal/cart"
	"lrkr/internal/domain"
	"lrkr/internal/events"
	applog "lrkr/internal/log"
	"lrkr/internal/repos"
)

// ProductLookup is the catalog call the cart needs.
type ProductLookup interface {
	Get(ctx context.Context, id string) (domain.Product, error)
}

// CartService runs one cart mutation per call against the session's durable slot.
// Calls for the same session never overlap.
type CartService struct {
	Slot   cart.Slot
	Prods  ProductLookup
	Events events.Publisher

	locks keyedMutex
}

func NewCartService(slot cart.Slot, prods ProductLookup, pub events.Publisher) *CartService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &CartService{Slot: slot, Prods: prods, Events: pub}
}

type CartView struct {
	Lines        []cart.Line `json:"lines"`
	ItemCount    int         `json:"itemCount"`
	Total        float64     `json:"total"`
	TotalDisplay string      `json:"totalDisplay"`
}

func viewOf(s *cart.Store) CartView {
	lines := s.Lines()
	return CartView{
		Lines:        lines,
		ItemCount:    cart.ItemCount(lines),
		Total:        cart.Total(lines),
		TotalDisplay: cart.FormatAmount(cart.Total(lines)),
	}
}

// cartChanged is the lrkr.cart.changed payload.
type cartChanged struct {
	SessionID string `json:"sessionId"`
	cart.Event
}

// withStore loads the session's cart, runs fn on it and returns the resulting view.
func (s *CartService) withStore(ctx context.Context, sid string, fn func(*cart.Store) error) (CartView, error) {
	unlock := s.locks.Lock(sid)
	defer unlock()

	adapter := cart.NewAdapter(s.Slot, cart.SlotKey(sid))
	lines, err := adapter.Load(ctx)
	if err != nil {
		// the cart starts over empty
		applog.Error(nil, "cart.load", err, map[string]any{"key": adapter.Key()})
	}
	store := cart.NewStore(lines, cart.WithPersister(adapter))
	store.Subscribe(func(ev cart.Event) {
		events.Emit(ctx, s.Events, events.SubjectCartChanged, cartChanged{SessionID: sid, Event: ev})
	})

	if fn != nil {
		if err := fn(store); err != nil {
			return viewOf(store), err
		}
	}
	return viewOf(store), nil
}

func (s *CartService) View(ctx context.Context, sid string) (CartView, error) {
	return s.withStore(ctx, sid, nil)
}

// Add puts qty of productID in the cart. The product must exist in the catalog.
func (s *CartService) Add(ctx context.Context, sid, productID string, qty int) (CartView, error) {
	p, err := s.Prods.Get(ctx, productID)
	if errors.Is(err, repos.ErrNotFound) {
		return CartView{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	if err != nil {
		return CartView{}, err
	}
	return s.withStore(ctx, sid, func(st *cart.Store) error {
		return st.AddItem(ctx, p, qty)
	})
}

func (s *CartService) Update(ctx context.Context, sid, productID string, qty int) (CartView, error) {
	return s.withStore(ctx, sid, func(st *cart.Store) error {
		return st.UpdateQuantity(ctx, productID, qty)
	})
}

func (s *CartService) Remove(ctx context.Context, sid, productID string) (CartView, error) {
	return s.withStore(ctx, sid, func(st *cart.Store) error {
		return st.RemoveItem(ctx, productID)
	})
}

func (s *CartService) Clear(ctx context.Context, sid string) (CartView, error) {
	return s.withStore(ctx, sid, func(st *cart.Store) error {
		return st.Clear(ctx)
	})
}
