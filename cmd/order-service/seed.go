package main

import (
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/ordenes-mesa/internal/memstore"
	"github.com/MikeMC777/ordenes-mesa/internal/menu"
	"github.com/MikeMC777/ordenes-mesa/internal/restaurant"
)

// seedDemo gives STORE=memory one restaurant with a small menu so the
// customer page and dashboards have something to show.
func seedDemo(s *memstore.Store) error {
	rid, err := s.AddRestaurant(restaurant.Restaurant{Name: "Demo Cafe", Subdomain: "demo"})
	if err != nil {
		return err
	}
	for _, it := range []menu.Item{
		{Name: "Masala Chai", Price: decimal.NewFromInt(20), Category: "Drinks"},
		{Name: "Filter Coffee", Price: decimal.NewFromInt(30), Category: "Drinks"},
		{Name: "Samosa", Price: decimal.NewFromInt(25), Category: "Snacks"},
		{Name: "Paneer Tikka", Price: decimal.NewFromInt(180), Category: "Mains"},
	} {
		it.RestaurantID = rid
		it.Available = true
		if _, err := s.AddMenuItem(it); err != nil {
			return err
		}
	}
	return nil
}
