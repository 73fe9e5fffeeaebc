// Package feed drives the per-client live snapshot loops behind the
// dashboard event streams.
package feed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-mesa/internal/order"
)

type Kind string

const (
	Orders    Kind = "orders"
	Additions Kind = "additions"
)

const DefaultInterval = 2 * time.Second

// Snapshotter reads the full current state of one restaurant.
type Snapshotter interface {
	OrdersSnapshot(ctx context.Context, restaurantID int64) (order.OrdersSnapshot, error)
	AdditionsSnapshot(ctx context.Context, restaurantID int64) ([]order.Addition, error)
}

// Waker signals that a restaurant's state may have changed.
type Waker interface {
	Watch(restaurantID int64) (<-chan struct{}, func())
}

type Broadcaster struct {
	snaps    Snapshotter
	waker    Waker
	interval time.Duration
	log      *zap.Logger
}

// New builds a Broadcaster. waker may be nil, in which case clients are
// refreshed on the interval only.
func New(snaps Snapshotter, waker Waker, interval time.Duration, log *zap.Logger) *Broadcaster {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Broadcaster{snaps: snaps, waker: waker, interval: interval, log: log}
}

// Run pushes a snapshot of kind for restaurantID through send right away,
// then again on every tick or change signal, until ctx ends or send fails.
// A failed read skips that push; the loop keeps going.
func (b *Broadcaster) Run(ctx context.Context, restaurantID int64, kind Kind, send func(any) error) error {
	if kind != Orders && kind != Additions {
		return fmt.Errorf("unknown feed kind %q", kind)
	}

	var wake <-chan struct{}
	if b.waker != nil {
		ch, cancel := b.waker.Watch(restaurantID)
		defer cancel()
		wake = ch
	}
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	log := b.log.With(zap.Int64("restaurant_id", restaurantID), zap.String("feed", string(kind)))
	log.Debug("feed subscriber connected")
	defer log.Debug("feed subscriber gone")

	for {
		if payload, ok := b.snapshot(ctx, restaurantID, kind, log); ok {
			if err := send(payload); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-wake:
		}
	}
}

func (b *Broadcaster) snapshot(ctx context.Context, restaurantID int64, kind Kind, log *zap.Logger) (any, bool) {
	var (
		payload any
		err     error
	)
	switch kind {
	case Orders:
		payload, err = b.snaps.OrdersSnapshot(ctx, restaurantID)
	case Additions:
		payload, err = b.snaps.AdditionsSnapshot(ctx, restaurantID)
	}
	if err != nil {
		if ctx.Err() == nil {
			log.Warn("feed snapshot failed, skipping tick", zap.Error(err))
		}
		return nil, false
	}
	return payload, true
}
