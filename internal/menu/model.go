package menu

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a dish on a restaurant's menu. Orders copy its name and price at
// the moment they are placed, so later edits never touch order history.
type Item struct {
	ID           int64           `json:"id"`
	RestaurantID int64           `json:"restaurant_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	Image        string          `json:"image,omitempty"`
	Available    bool            `json:"available"`
	CreatedAt    time.Time       `json:"created_at"`
}
