package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-mesa/internal/events"
)

// Notifier receives a change after it has been committed.
type Notifier interface {
	Publish(c events.Change)
}

type nopNotifier struct{}

func (nopNotifier) Publish(events.Change) {}

// Service is the order lifecycle manager, the addition tracker and the
// revenue aggregator over one Repository. It holds no per-request state;
// the caller's restaurant id is passed explicitly on every call.
type Service struct {
	repo     Repository
	notifier Notifier
	loc      *time.Location
	now      func() time.Time
	log      *zap.Logger
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLocation sets the time zone whose calendar days bound "today" and the
// daily revenue report.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock lets tests pin "now".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		notifier: nopNotifier{},
		loc:      time.Local,
		now:      time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder validates and stores a customer order with status Received.
// Prices come from the client as-is but must be whole cents.
func (s *Service) CreateOrder(ctx context.Context, restaurantID int64, tableNo int, items []CreateOrderItem) (int64, error) {
	if restaurantID <= 0 {
		return 0, invalid("restaurant_id is required")
	}
	if tableNo <= 0 {
		return 0, invalid("table must be positive")
	}
	if len(items) == 0 {
		return 0, invalid("at least one item is required")
	}
	lines := make([]LineItem, 0, len(items))
	for i, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return 0, invalid("item %d: name is required", i)
		}
		if it.Qty <= 0 {
			return 0, invalid("invalid quantity for item %s", name)
		}
		if !it.Price.IsPositive() {
			return 0, invalid("invalid price for item %s", name)
		}
		// Money columns hold cents; a finer price would be rounded on
		// insert and the stored total would drift from its lines.
		if !it.Price.Equal(it.Price.Round(2)) {
			return 0, invalid("price for item %s has more than 2 decimals", name)
		}
		lines = append(lines, LineItem{Name: name, Price: it.Price, Qty: it.Qty})
	}

	o := &Order{
		RestaurantID: restaurantID,
		TableNo:      tableNo,
		Items:        lines,
		Total:        Total(lines),
		Status:       StatusReceived,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}
	s.log.Info("order created",
		zap.Int64("restaurant_id", restaurantID),
		zap.Int64("order_id", o.ID),
		zap.Int("table_no", tableNo),
		zap.String("total", o.Total.String()))
	s.notify(events.OrderCreated, restaurantID, o.ID, 0)
	return o.ID, nil
}

// SetStatus moves an order to Preparing, Ready or Served. Non-adjacent
// jumps are allowed; going back to Received is not.
func (s *Service) SetStatus(ctx context.Context, restaurantID, orderID int64, status Status) error {
	if !status.Settable() {
		return ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, restaurantID, orderID, status); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	s.log.Info("order status changed",
		zap.Int64("restaurant_id", restaurantID),
		zap.Int64("order_id", orderID),
		zap.String("status", string(status)))
	s.notify(events.OrderStatus, restaurantID, orderID, 0)
	return nil
}

// AppendItem adds qty of a menu item to an existing order and opens a New
// kitchen addition for it, atomically.
func (s *Service) AppendItem(ctx context.Context, restaurantID, orderID, menuItemID int64, qty int) (*Addition, error) {
	if qty <= 0 {
		return nil, invalid("qty must be positive")
	}
	if menuItemID <= 0 {
		return nil, invalid("item_id is required")
	}
	a, err := s.repo.AppendItem(ctx, restaurantID, orderID, menuItemID, qty)
	if err != nil {
		return nil, fmt.Errorf("append item: %w", err)
	}
	s.log.Info("item added to order",
		zap.Int64("restaurant_id", restaurantID),
		zap.Int64("order_id", orderID),
		zap.Int64("addition_id", a.ID),
		zap.String("item", a.ItemName),
		zap.Int("qty", a.Qty))
	s.notify(events.ItemAdded, restaurantID, orderID, a.ID)
	return a, nil
}

func (s *Service) Get(ctx context.Context, restaurantID, orderID int64) (*Order, error) {
	o, err := s.repo.Get(ctx, restaurantID, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (s *Service) notify(kind events.Kind, restaurantID, orderID, additionID int64) {
	s.notifier.Publish(events.Change{
		Kind:         kind,
		RestaurantID: restaurantID,
		OrderID:      orderID,
		AdditionID:   additionID,
		At:           s.now().UTC(),
	})
}
