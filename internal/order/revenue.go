package order

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// DayBounds returns [start, end) of the calendar day containing t in loc.
// Both the revenue report and the live feed go through here so they roll
// over at the same instant.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// ParseDay reads a YYYY-MM-DD date in the service's time zone.
func (s *Service) ParseDay(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, invalid("date is required")
	}
	d, err := time.ParseInLocation(dateLayout, v, s.loc)
	if err != nil {
		return time.Time{}, invalid("date must be YYYY-MM-DD")
	}
	return d, nil
}

func (s *Service) Today() time.Time { return s.now().In(s.loc) }

// DailyRevenue sums the totals of Served orders created on day.
func (s *Service) DailyRevenue(ctx context.Context, restaurantID int64, day time.Time) (DailyReport, error) {
	from, to := DayBounds(day, s.loc)
	orders, err := s.repo.List(ctx, Filter{RestaurantID: restaurantID, From: from, To: to, Status: StatusServed})
	if err != nil {
		return DailyReport{}, fmt.Errorf("daily revenue: %w", err)
	}
	if orders == nil {
		orders = []Order{}
	}
	return DailyReport{Orders: orders, Revenue: sumTotals(orders), Count: len(orders)}, nil
}

func sumTotals(orders []Order) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(o.Total)
	}
	return sum
}
