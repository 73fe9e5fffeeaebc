package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/MikeMC777/ordenes-mesa/internal/order"
)

// Orders implements order.Repository.
type Orders struct{ s *Store }

var _ order.Repository = (*Orders)(nil)

func (r *Orders) Create(ctx context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.restaurants[o.RestaurantID]; !ok {
		return order.ErrNotFound
	}
	r.s.nextOrder++
	o.ID = r.s.nextOrder
	o.CreatedAt = r.s.now().UTC()
	r.s.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (r *Orders) Get(ctx context.Context, restaurantID, id int64) (*order.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok || o.RestaurantID != restaurantID {
		return nil, order.ErrNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r *Orders) List(ctx context.Context, f order.Filter) ([]order.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []order.Order{}
	for _, o := range r.s.orders {
		if o.RestaurantID != f.RestaurantID || !inRange(o.CreatedAt, f.From, f.To) {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Orders) UpdateStatus(ctx context.Context, restaurantID, id int64, status order.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok || o.RestaurantID != restaurantID {
		return order.ErrNotFound
	}
	o.Status = status
	r.s.orders[id] = o
	return nil
}

func (r *Orders) AppendItem(ctx context.Context, restaurantID, orderID, menuItemID int64, qty int) (*order.Addition, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	it, ok := r.s.menu[menuItemID]
	if !ok || it.RestaurantID != restaurantID {
		return nil, order.ErrNotFound
	}
	line, err := order.LineFromMenu(&it, qty)
	if err != nil {
		return nil, err
	}
	o, ok := r.s.orders[orderID]
	if !ok || o.RestaurantID != restaurantID {
		return nil, order.ErrNotFound
	}

	// Both rows are written only after every check passed.
	o = cloneOrder(o)
	o.Append(line)
	a := order.NewAddition(&o, line)
	r.s.nextAddition++
	a.ID = r.s.nextAddition
	a.CreatedAt = r.s.now().UTC()

	r.s.orders[o.ID] = o
	r.s.additions[a.ID] = *a
	return a, nil
}

func (r *Orders) ListAdditions(ctx context.Context, f order.AdditionFilter) ([]order.Addition, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []order.Addition{}
	for _, a := range r.s.additions {
		if a.RestaurantID != f.RestaurantID || !inRange(a.CreatedAt, f.From, f.To) {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *Orders) MarkAdditionPreparing(ctx context.Context, restaurantID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.additions[id]
	if !ok || a.RestaurantID != restaurantID {
		return order.ErrNotFound
	}
	a.Status = order.AdditionPreparing
	r.s.additions[id] = a
	return nil
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

func cloneOrder(o order.Order) order.Order {
	o.Items = append([]order.LineItem(nil), o.Items...)
	return o
}
