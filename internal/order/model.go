package order

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusReceived  Status = "Received"
	StatusPreparing Status = "Preparing"
	StatusReady     Status = "Ready"
	StatusServed    Status = "Served"
)

// Settable reports whether staff may move an order into s. Received is only
// ever assigned on creation.
func (s Status) Settable() bool {
	switch s {
	case StatusPreparing, StatusReady, StatusServed:
		return true
	}
	return false
}

type AdditionStatus string

const (
	AdditionNew       AdditionStatus = "New"
	AdditionPreparing AdditionStatus = "Preparing"
)

// LineItem is a denormalized snapshot of what was ordered; it never points
// back at the menu.
type LineItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Qty   int             `json:"qty"`
}

func (l LineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

type Order struct {
	ID           int64
	RestaurantID int64
	TableNo      int
	Items        []LineItem
	Total        decimal.Decimal
	Status       Status
	CreatedAt    time.Time
}

// Append adds a line and re-derives Total so the two never drift apart.
func (o *Order) Append(l LineItem) {
	o.Items = append(o.Items, l)
	o.Total = Total(o.Items)
}

// Total sums price*qty over items.
func Total(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Subtotal())
	}
	return sum
}

// EncodeItems serializes line items into the blob stored on the order row.
func EncodeItems(items []LineItem) (string, error) {
	if items == nil {
		items = []LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func DecodeItems(blob string) ([]LineItem, error) {
	var items []LineItem
	if blob == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// orderJSON is the wire shape the dashboards read; items travel as the
// serialized blob, exactly as stored.
type orderJSON struct {
	ID           int64           `json:"id"`
	RestaurantID int64           `json:"restaurant_id"`
	TableNo      int             `json:"table_no"`
	Items        string          `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Status       Status          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (o Order) MarshalJSON() ([]byte, error) {
	blob, err := EncodeItems(o.Items)
	if err != nil {
		return nil, err
	}
	return json.Marshal(orderJSON{
		ID:           o.ID,
		RestaurantID: o.RestaurantID,
		TableNo:      o.TableNo,
		Items:        blob,
		Total:        o.Total,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
	})
}

func (o *Order) UnmarshalJSON(b []byte) error {
	var w orderJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	items, err := DecodeItems(w.Items)
	if err != nil {
		return err
	}
	*o = Order{
		ID:           w.ID,
		RestaurantID: w.RestaurantID,
		TableNo:      w.TableNo,
		Items:        items,
		Total:        w.Total,
		Status:       w.Status,
		CreatedAt:    w.CreatedAt,
	}
	return nil
}

// Addition is the kitchen ticket produced when staff append an item to an
// order that has already been placed.
type Addition struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"order_id"`
	RestaurantID int64           `json:"-"`
	TableNo      int             `json:"table_no"`
	ItemName     string          `json:"item_name"`
	Qty          int             `json:"qty"`
	Price        decimal.Decimal `json:"price"`
	Status       AdditionStatus  `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}
