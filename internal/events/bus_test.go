package events

import (
	"sync"
	"testing"
	"time"
)

func waitSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected wake-up signal")
	}
}

func noSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
		t.Fatal("unexpected wake-up signal")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBus_WakesOnlyMatchingRestaurant(t *testing.T) {
	b := NewBus()
	defer b.Close()

	w1, cancel1 := b.Watch(1)
	defer cancel1()
	w2, cancel2 := b.Watch(2)
	defer cancel2()

	b.Publish(Change{Kind: OrderCreated, RestaurantID: 1, OrderID: 10})

	waitSignal(t, w1)
	noSignal(t, w2)
}

func TestBus_SignalsCoalesce(t *testing.T) {
	b := NewBus()
	w, cancel := b.Watch(1)
	defer cancel()

	for i := 0; i < 5; i++ {
		b.Publish(Change{Kind: OrderStatus, RestaurantID: 1})
	}
	waitSignal(t, w)
	noSignal(t, w)
}

func TestBus_CancelUnregisters(t *testing.T) {
	b := NewBus()
	_, cancelA := b.Watch(3)
	_, cancelB := b.Watch(3)
	if got := b.Watchers(3); got != 2 {
		t.Fatalf("watchers=%d, want 2", got)
	}
	cancelA()
	cancelA() // second call is harmless
	if got := b.Watchers(3); got != 1 {
		t.Fatalf("watchers=%d, want 1", got)
	}
	cancelB()
	if got := b.Watchers(3); got != 0 {
		t.Fatalf("watchers=%d, want 0", got)
	}
}

func TestBus_Forward(t *testing.T) {
	b := NewBus()

	var (
		mu  sync.Mutex
		got []Change
	)
	if err := b.Forward(func(c Change) {
		mu.Lock()
		got = append(got, c)
		mu.Unlock()
	}); err != nil {
		t.Fatalf("forward: %v", err)
	}

	b.Publish(Change{Kind: ItemAdded, RestaurantID: 4, OrderID: 1, AdditionID: 9})
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0].AdditionID != 9 {
		t.Fatalf("forwarded=%+v", got)
	}
}

func TestRoutingKey(t *testing.T) {
	c := Change{Kind: OrderStatus, RestaurantID: 7}
	if got := RoutingKey(c); got != "restaurant.7.order.status" {
		t.Fatalf("routing key=%q", got)
	}
}
