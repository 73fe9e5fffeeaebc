package order

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

var gstRate = decimal.NewFromFloat(0.05)

// OrdersSnapshot returns today's orders, newest first, with today's served
// revenue computed from the same read.
func (s *Service) OrdersSnapshot(ctx context.Context, restaurantID int64) (OrdersSnapshot, error) {
	from, to := DayBounds(s.Today(), s.loc)
	orders, err := s.repo.List(ctx, Filter{RestaurantID: restaurantID, From: from, To: to})
	if err != nil {
		return OrdersSnapshot{}, fmt.Errorf("orders snapshot: %w", err)
	}
	if orders == nil {
		orders = []Order{}
	}
	revenue := decimal.Zero
	for _, o := range orders {
		if o.Status == StatusServed {
			revenue = revenue.Add(o.Total)
		}
	}
	return OrdersSnapshot{Orders: orders, TodayRevenue: revenue}, nil
}

// AdditionsSnapshot returns today's additions still in New, oldest first.
func (s *Service) AdditionsSnapshot(ctx context.Context, restaurantID int64) ([]Addition, error) {
	from, to := DayBounds(s.Today(), s.loc)
	out, err := s.repo.ListAdditions(ctx, AdditionFilter{RestaurantID: restaurantID, From: from, To: to, Status: AdditionNew})
	if err != nil {
		return nil, fmt.Errorf("additions snapshot: %w", err)
	}
	if out == nil {
		out = []Addition{}
	}
	return out, nil
}

// Bill prices an order with 5% GST on top of the line items.
func (s *Service) Bill(ctx context.Context, restaurantID, orderID int64) (*Bill, error) {
	o, err := s.Get(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}
	subtotal := Total(o.Items)
	gst := subtotal.Mul(gstRate).Round(2)
	return &Bill{
		Order:    *o,
		Items:    o.Items,
		Subtotal: subtotal,
		GST:      gst,
		Total:    subtotal.Add(gst).Round(2),
	}, nil
}
