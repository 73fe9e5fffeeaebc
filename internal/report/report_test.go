package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MikeMC777/ordenes-mesa/internal/memstore"
	"github.com/MikeMC777/ordenes-mesa/internal/order"
	"github.com/MikeMC777/ordenes-mesa/internal/restaurant"
)

func TestJob_LogsYesterdayPerRestaurant(t *testing.T) {
	ctx := context.Background()
	yesterday := time.Date(2026, 3, 13, 19, 0, 0, 0, time.UTC)
	now := yesterday
	clock := func() time.Time { return now }

	store := memstore.New()
	store.SetClock(clock)
	a, _ := store.AddRestaurant(restaurant.Restaurant{Name: "Chai Point", Subdomain: "chai"})
	b, _ := store.AddRestaurant(restaurant.Restaurant{Name: "Dosa Hut", Subdomain: "dosa"})
	svc := order.NewService(store.Orders(), order.WithLocation(time.UTC), order.WithClock(clock))

	for _, qty := range []int{1, 3} {
		id, err := svc.CreateOrder(ctx, a, 1, []order.CreateOrderItem{{Name: "Tea", Price: decimal.NewFromInt(10), Qty: qty}})
		if err != nil {
			t.Fatal(err)
		}
		_ = svc.SetStatus(ctx, a, id, order.StatusServed)
	}
	now = yesterday.Add(10 * time.Hour) // past midnight

	core, logs := observer.New(zapcore.InfoLevel)
	NewJob(store.Restaurants(), svc, zap.New(core)).Run()

	entries := logs.FilterMessage("end of day revenue").All()
	if len(entries) != 2 {
		t.Fatalf("entries=%v", logs.All())
	}
	got := map[int64]map[string]any{}
	for _, e := range entries {
		m := e.ContextMap()
		got[m["restaurant_id"].(int64)] = m
	}
	if got[a]["revenue"] != "40.00" || got[a]["served"] != int64(2) || got[a]["date"] != "2026-03-13" {
		t.Fatalf("restaurant a=%v", got[a])
	}
	if got[b]["revenue"] != "0.00" || got[b]["served"] != int64(0) {
		t.Fatalf("restaurant b=%v", got[b])
	}
}

func TestStart_RejectsBadSpec(t *testing.T) {
	if _, err := Start("every tuesday", time.UTC, NewJob(nil, nil, zap.NewNop())); err == nil {
		t.Fatal("expected parse error")
	}
	c, err := Start("5 0 * * *", time.UTC, NewJob(nil, nil, zap.NewNop()))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Entries()) != 1 {
		t.Fatalf("entries=%d", len(c.Entries()))
	}
	c.Stop()
}
