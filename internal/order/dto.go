package order

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CreateOrderItem is one line as submitted from the customer menu.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	Name  string          `json:"name"  example:"Tea"`
	Price decimal.Decimal `json:"price" swaggertype:"number" example:"10"`
	Qty   int             `json:"qty"   example:"2"`
}

// CreateOrderRequest payload placed by a customer scanning a table QR.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	RestaurantID int64             `json:"restaurant_id" example:"1"`
	Table        int               `json:"table"         example:"4"`
	Items        []CreateOrderItem `json:"items"`
}

// UpdateStatusRequest moves an order along Received → Preparing → Ready → Served.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"Preparing"`
}

// AddItemRequest appends a menu item to an existing order.
// swagger:model AddItemRequest
type AddItemRequest struct {
	ItemID ID  `json:"item_id" swaggertype:"integer" example:"12"`
	Qty    int `json:"qty"     example:"1"`
}

// ID is a row id that also decodes from a numeric string, which is what an
// HTML <select> value turns into.
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(strings.TrimSpace(s))
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("id %s: not an integer", b)
	}
	*id = ID(n)
	return nil
}

// DailyReport is the served-revenue view of one restaurant day.
// swagger:model DailyReport
type DailyReport struct {
	Orders  []Order         `json:"orders"`
	Revenue decimal.Decimal `json:"revenue" swaggertype:"number"`
	Count   int             `json:"count"`
}

// OrdersSnapshot is what the /events feed pushes every tick.
// swagger:model OrdersSnapshot
type OrdersSnapshot struct {
	Orders       []Order         `json:"orders"`
	TodayRevenue decimal.Decimal `json:"today_revenue" swaggertype:"number"`
}

// Bill is the printable breakdown of an order.
// swagger:model Bill
type Bill struct {
	RestaurantName string `json:"restaurant_name,omitempty"`

	Order    Order           `json:"order"`
	Items    []LineItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal" swaggertype:"number"`
	GST      decimal.Decimal `json:"gst"      swaggertype:"number"`
	Total    decimal.Decimal `json:"total"    swaggertype:"number"`
}
