package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"lrkr/internal/cart"
	"lrkr/internal/events"
	"lrkr/internal/repos"
	"lrkr/internal/services"
)

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (r *recordingPublisher) Publish(_ context.Context, subject string, _ any) error {
	r.mu.Lock()
	r.subjects = append(r.subjects, subject)
	r.mu.Unlock()
	return nil
}

func newCartSvc(t *testing.T) (*services.CartService, cart.Slot, *recordingPublisher) {
	t.Helper()
	db := memdb(t)
	slot := cart.NewMemorySlot()
	pub := &recordingPublisher{}
	return services.NewCartService(slot, repos.NewProductRepo(db), pub), slot, pub
}

func TestCartService_UnknownProduct(t *testing.T) {
	svc, _, pub := newCartSvc(t)
	_, err := svc.Add(context.Background(), "s", "saffron-oil", 1)
	if !errors.Is(err, services.ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
	if len(pub.subjects) != 0 {
		t.Fatalf("no event expected, got %v", pub.subjects)
	}
}

func TestCartService_SnapshotAndClamp(t *testing.T) {
	svc, _, pub := newCartSvc(t)
	ctx := context.Background()

	// sesame-oil is seeded with stock 3
	if _, err := svc.Add(ctx, "s", "sesame-oil", 0); err != nil {
		t.Fatal(err)
	}
	v, err := svc.Update(ctx, "s", "sesame-oil", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Lines) != 1 || v.Lines[0].Quantity != 3 {
		t.Fatalf("want clamp to 3, got %+v", v.Lines)
	}
	if v.Lines[0].Stock == nil || *v.Lines[0].Stock != 3 {
		t.Fatalf("stock ceiling not captured: %+v", v.Lines[0])
	}

	v, err = svc.Update(ctx, "s", "sesame-oil", -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Lines) != 0 {
		t.Fatalf("want empty cart, got %+v", v.Lines)
	}
	if len(pub.subjects) != 3 || pub.subjects[0] != events.SubjectCartChanged {
		t.Fatalf("want 3 cart events, got %v", pub.subjects)
	}
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	svc, _, _ := newCartSvc(t)
	ctx := context.Background()
	if _, err := svc.Add(ctx, "a", "mustard-oil", 1); err != nil {
		t.Fatal(err)
	}
	v, err := svc.View(ctx, "b")
	if err != nil {
		t.Fatal(err)
	}
	if v.ItemCount != 0 || v.Lines == nil {
		t.Fatalf("session b should see an empty cart, got %+v", v)
	}
}

func TestCartService_CorruptSlotStartsEmpty(t *testing.T) {
	svc, slot, _ := newCartSvc(t)
	ctx := context.Background()
	if err := slot.Put(ctx, cart.SlotKey("s"), []byte("{{{")); err != nil {
		t.Fatal(err)
	}
	v, err := svc.View(ctx, "s")
	if err != nil {
		t.Fatalf("corrupt slot must not fail the request: %v", err)
	}
	if v.ItemCount != 0 {
		t.Fatalf("want empty, got %+v", v)
	}
	v, err = svc.Add(ctx, "s", "clove-oil", 2)
	if err != nil || v.ItemCount != 2 {
		t.Fatalf("add after corruption: %v %+v", err, v)
	}
}

func TestCartService_ClearDeletesSlot(t *testing.T) {
	svc, slot, _ := newCartSvc(t)
	ctx := context.Background()
	if _, err := svc.Add(ctx, "s", "clove-oil", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Clear(ctx, "s"); err != nil {
		t.Fatal(err)
	}
	if _, err := slot.Get(ctx, cart.SlotKey("s")); !errors.Is(err, cart.ErrSlotEmpty) {
		t.Fatalf("slot should be gone, got %v", err)
	}
}

func TestCartService_ConcurrentAddsAreSerialised(t *testing.T) {
	svc, _, _ := newCartSvc(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Add(ctx, "busy", "mustard-oil", 1); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	v, err := svc.View(ctx, "busy")
	if err != nil {
		t.Fatal(err)
	}
	if v.ItemCount != 20 {
		t.Fatalf("lost updates: want 20, got %d", v.ItemCount)
	}
}
