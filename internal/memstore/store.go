// Package memstore is a process-local implementation of the order, menu and
// restaurant repositories. It backs STORE=memory and the test suites.
package memstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MikeMC777/ordenes-mesa/internal/menu"
	"github.com/MikeMC777/ordenes-mesa/internal/order"
	"github.com/MikeMC777/ordenes-mesa/internal/restaurant"
)

var ErrDuplicateSubdomain = errors.New("subdomain already taken")

// Store keeps every table behind one mutex, which gives the same
// all-or-nothing behaviour a database transaction would.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	restaurants map[int64]restaurant.Restaurant
	menu        map[int64]menu.Item
	orders      map[int64]order.Order
	additions   map[int64]order.Addition

	nextRestaurant, nextMenu, nextOrder, nextAddition int64
}

func New() *Store {
	return &Store{
		now:         time.Now,
		restaurants: make(map[int64]restaurant.Restaurant),
		menu:        make(map[int64]menu.Item),
		orders:      make(map[int64]order.Order),
		additions:   make(map[int64]order.Addition),
	}
}

// SetClock overrides the timestamp source for rows created afterwards.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Orders() *Orders           { return &Orders{s} }
func (s *Store) Menu() *Menu               { return &Menu{s} }
func (s *Store) Restaurants() *Restaurants { return &Restaurants{s} }

// AddRestaurant stores r with a fresh id. Subdomains must be unique.
func (s *Store) AddRestaurant(r restaurant.Restaurant) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.restaurants {
		if strings.EqualFold(x.Subdomain, r.Subdomain) {
			return 0, ErrDuplicateSubdomain
		}
	}
	s.nextRestaurant++
	r.ID = s.nextRestaurant
	r.CreatedAt = s.now().UTC()
	s.restaurants[r.ID] = r
	return r.ID, nil
}

func (s *Store) AddMenuItem(it menu.Item) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.restaurants[it.RestaurantID]; !ok {
		return 0, restaurant.ErrNotFound
	}
	s.nextMenu++
	it.ID = s.nextMenu
	it.CreatedAt = s.now().UTC()
	s.menu[it.ID] = it
	return it.ID, nil
}

// Restaurants implements restaurant.Repository.
type Restaurants struct{ s *Store }

var _ restaurant.Repository = (*Restaurants)(nil)

func (r *Restaurants) GetByID(ctx context.Context, id int64) (*restaurant.Restaurant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	x, ok := r.s.restaurants[id]
	if !ok {
		return nil, restaurant.ErrNotFound
	}
	return &x, nil
}

func (r *Restaurants) GetBySubdomain(ctx context.Context, subdomain string) (*restaurant.Restaurant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, x := range r.s.restaurants {
		if x.Subdomain == subdomain {
			x := x
			return &x, nil
		}
	}
	return nil, restaurant.ErrNotFound
}

func (r *Restaurants) List(ctx context.Context) ([]restaurant.Restaurant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]restaurant.Restaurant, 0, len(r.s.restaurants))
	for _, x := range r.s.restaurants {
		out = append(out, x)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Menu implements menu.Repository.
type Menu struct{ s *Store }

var _ menu.Repository = (*Menu)(nil)

func (m *Menu) ListAvailable(ctx context.Context, restaurantID int64) ([]menu.Item, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := []menu.Item{}
	for _, it := range m.s.menu {
		if it.RestaurantID == restaurantID && it.Available {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
