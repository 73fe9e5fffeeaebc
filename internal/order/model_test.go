package order

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestOrderJSON_ItemsTravelAsString(t *testing.T) {
	o := Order{
		ID:           3,
		RestaurantID: 1,
		TableNo:      4,
		Items:        []LineItem{{Name: "Tea", Price: decimal.NewFromInt(10), Qty: 2}},
		Total:        decimal.NewFromInt(20),
		Status:       StatusReceived,
		CreatedAt:    time.Date(2026, 3, 14, 6, 30, 0, 0, time.UTC),
	}
	b, err := json.Marshal(o)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	blob, ok := raw["items"].(string)
	if !ok {
		t.Fatalf("items is %T, want string: %s", raw["items"], b)
	}
	if !strings.Contains(blob, `"name":"Tea"`) || !strings.Contains(blob, `"qty":2`) {
		t.Fatalf("items blob=%s", blob)
	}
	for _, k := range []string{"id", "restaurant_id", "table_no", "total", "status", "created_at"} {
		if _, ok := raw[k]; !ok {
			t.Fatalf("missing key %q in %s", k, b)
		}
	}

	var back Order
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Items) != 1 || back.Items[0].Name != "Tea" || !back.Total.Equal(o.Total) {
		t.Fatalf("decoded=%+v", back)
	}
}

func TestAppend_KeepsTotalInSync(t *testing.T) {
	var o Order
	o.Append(LineItem{Name: "Tea", Price: decimal.RequireFromString("10.50"), Qty: 2})
	o.Append(LineItem{Name: "Bun", Price: decimal.RequireFromString("0.25"), Qty: 3})
	if !o.Total.Equal(decimal.RequireFromString("21.75")) {
		t.Fatalf("total=%s", o.Total)
	}
}

func TestDayBounds(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)

	// 20:00 UTC is already the next calendar day in IST.
	start, end := DayBounds(time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC), ist)
	if want := time.Date(2026, 3, 15, 0, 0, 0, 0, ist); !start.Equal(want) {
		t.Fatalf("start=%s, want %s", start, want)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Fatalf("span=%s", end.Sub(start))
	}

	// Midnight belongs to the day it starts.
	s2, _ := DayBounds(start, ist)
	if !s2.Equal(start) {
		t.Fatalf("midnight moved to %s", s2)
	}
	// The last nanosecond belongs to the previous day.
	s3, _ := DayBounds(end.Add(-time.Nanosecond), ist)
	if !s3.Equal(start) {
		t.Fatalf("23:59:59.999 moved to %s", s3)
	}
}

func TestStatusSettable(t *testing.T) {
	for s, want := range map[Status]bool{
		StatusReceived:  false,
		StatusPreparing: true,
		StatusReady:     true,
		StatusServed:    true,
		"Cancelled":     false,
	} {
		if got := s.Settable(); got != want {
			t.Errorf("%s.Settable()=%v, want %v", s, got, want)
		}
	}
}

func TestID_DecodesNumberOrNumericString(t *testing.T) {
	for in, want := range map[string]ID{
		`{"item_id":7,"qty":1}`:      7,
		`{"item_id":"7","qty":1}`:    7,
		`{"item_id":" 12 ","qty":1}`: 12,
		`{"qty":1}`:                  0,
		`{"item_id":null,"qty":1}`:   0,
	} {
		var req AddItemRequest
		if err := json.Unmarshal([]byte(in), &req); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if req.ItemID != want {
			t.Fatalf("%s: item_id=%d, want %d", in, req.ItemID, want)
		}
	}
	for _, in := range []string{`{"item_id":"seven"}`, `{"item_id":""}`, `{"item_id":2.5}`, `{"item_id":true}`} {
		var req AddItemRequest
		if err := json.Unmarshal([]byte(in), &req); err == nil {
			t.Fatalf("%s: decoded to %d", in, req.ItemID)
		}
	}
}
