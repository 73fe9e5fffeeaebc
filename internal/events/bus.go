// Package events carries "something changed for restaurant N" signals from
// committed writes to whoever wants them: live feed subscribers in this
// process and, optionally, a message broker.
package events

import (
	"sync"
	"time"

	EventBus "github.com/asaskevich/EventBus"
)

const topicChange = "orders:changed"

type Kind string

const (
	OrderCreated      Kind = "order.created"
	OrderStatus       Kind = "order.status"
	ItemAdded         Kind = "order.item_added"
	AdditionPreparing Kind = "addition.preparing"
)

type Change struct {
	Kind         Kind      `json:"kind"`
	RestaurantID int64     `json:"restaurant_id"`
	OrderID      int64     `json:"order_id,omitempty"`
	AdditionID   int64     `json:"addition_id,omitempty"`
	At           time.Time `json:"at"`
}

type watcher struct {
	ch chan struct{}
}

// Bus fans changes out per restaurant. Watchers get a coalescing wake-up
// signal, never the change itself; they are expected to re-read state.
type Bus struct {
	bus EventBus.Bus

	mu       sync.Mutex
	watchers map[int64]map[*watcher]struct{}
}

func NewBus() *Bus {
	b := &Bus{
		bus:      EventBus.New(),
		watchers: make(map[int64]map[*watcher]struct{}),
	}
	// dispatch is subscribed once for the lifetime of the bus; per-client
	// registration happens in the watcher map.
	_ = b.bus.Subscribe(topicChange, b.dispatch)
	return b
}

func (b *Bus) Publish(c Change) {
	b.bus.Publish(topicChange, c)
}

// Watch registers interest in one restaurant. The returned channel receives
// at most one pending signal; cancel must be called when done.
func (b *Bus) Watch(restaurantID int64) (<-chan struct{}, func()) {
	w := &watcher{ch: make(chan struct{}, 1)}

	b.mu.Lock()
	set, ok := b.watchers[restaurantID]
	if !ok {
		set = make(map[*watcher]struct{})
		b.watchers[restaurantID] = set
	}
	set[w] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return w.ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.watchers[restaurantID], w)
			if len(b.watchers[restaurantID]) == 0 {
				delete(b.watchers, restaurantID)
			}
		})
	}
}

// Watchers reports how many subscribers are registered for a restaurant.
func (b *Bus) Watchers(restaurantID int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.watchers[restaurantID])
}

// Forward delivers every change to fn on a separate goroutine so a slow
// consumer never holds up the write path. Delivery order is not kept.
func (b *Bus) Forward(fn func(Change)) error {
	return b.bus.SubscribeAsync(topicChange, fn, false)
}

// Close waits for forwarded deliveries still in flight.
func (b *Bus) Close() {
	b.bus.WaitAsync()
}

func (b *Bus) dispatch(c Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for w := range b.watchers[c.RestaurantID] {
		select {
		case w.ch <- struct{}{}:
		default:
		}
	}
}
