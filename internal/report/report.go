// Package report runs the end-of-day revenue summary.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-mesa/internal/order"
	"github.com/MikeMC777/ordenes-mesa/internal/restaurant"
)

type Revenue interface {
	DailyRevenue(ctx context.Context, restaurantID int64, day time.Time) (order.DailyReport, error)
	Today() time.Time
}

// Line is one restaurant's served totals for a day.
type Line struct {
	RestaurantID int64
	Name         string
	Count        int
	Revenue      decimal.Decimal
}

type Job struct {
	restaurants restaurant.Repository
	revenue     Revenue
	log         *zap.Logger
}

func NewJob(restaurants restaurant.Repository, revenue Revenue, log *zap.Logger) *Job {
	return &Job{restaurants: restaurants, revenue: revenue, log: log}
}

// Summarize collects every restaurant's report for day. A restaurant whose
// read fails is logged and left out.
func (j *Job) Summarize(ctx context.Context, day time.Time) ([]Line, error) {
	rs, err := j.restaurants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	out := make([]Line, 0, len(rs))
	for _, r := range rs {
		rep, err := j.revenue.DailyRevenue(ctx, r.ID, day)
		if err != nil {
			j.log.Error("daily revenue failed", zap.Int64("restaurant_id", r.ID), zap.Error(err))
			continue
		}
		out = append(out, Line{RestaurantID: r.ID, Name: r.Name, Count: rep.Count, Revenue: rep.Revenue})
	}
	return out, nil
}

// Run logs yesterday's summary.
func (j *Job) Run() {
	defer func() {
		if err := recover(); err != nil {
			j.log.Error("report job panic", zap.Any("panic", err))
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	day := j.revenue.Today().AddDate(0, 0, -1)
	lines, err := j.Summarize(ctx, day)
	if err != nil {
		j.log.Error("end of day report", zap.Error(err))
		return
	}
	for _, l := range lines {
		j.log.Info("end of day revenue",
			zap.String("date", day.Format("2006-01-02")),
			zap.Int64("restaurant_id", l.RestaurantID),
			zap.String("restaurant", l.Name),
			zap.Int("served", l.Count),
			zap.String("revenue", l.Revenue.StringFixed(2)))
	}
}

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Start schedules job on spec in loc. The caller stops the returned Cron.
func Start(spec string, loc *time.Location, job cron.Job) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))
	if _, err := c.AddJob(spec, job); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
