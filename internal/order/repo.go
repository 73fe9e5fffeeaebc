package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/ordenes-mesa/internal/menu"
)

// Filter narrows order listings. Zero From/To means unbounded; an empty
// Status means any status. RestaurantID is always applied.
type Filter struct {
	RestaurantID int64
	From, To     time.Time
	Status       Status
}

type AdditionFilter struct {
	RestaurantID int64
	From, To     time.Time
	Status       AdditionStatus
}

// Repository is the tenant-scoped store. Every method takes the restaurant
// id as part of its lookup predicate.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, restaurantID, id int64) (*Order, error)
	List(ctx context.Context, f Filter) ([]Order, error)
	UpdateStatus(ctx context.Context, restaurantID, id int64, status Status) error
	// AppendItem appends a snapshot of the menu item to the order and
	// records the matching addition in a single transaction.
	AppendItem(ctx context.Context, restaurantID, orderID, menuItemID int64, qty int) (*Addition, error)

	ListAdditions(ctx context.Context, f AdditionFilter) ([]Addition, error)
	MarkAdditionPreparing(ctx context.Context, restaurantID, id int64) error
}

// LineFromMenu snapshots a menu item into an order line.
func LineFromMenu(it *menu.Item, qty int) (LineItem, error) {
	if !it.Available {
		return LineItem{}, invalid("menu item %d is not available", it.ID)
	}
	return LineItem{Name: it.Name, Price: it.Price, Qty: qty}, nil
}

// NewAddition builds the kitchen ticket for a line just appended to o.
func NewAddition(o *Order, l LineItem) *Addition {
	return &Addition{
		OrderID:      o.ID,
		RestaurantID: o.RestaurantID,
		TableNo:      o.TableNo,
		ItemName:     l.Name,
		Qty:          l.Qty,
		Price:        l.Price,
		Status:       AdditionNew,
	}
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const selectOrder = `
	SELECT id, restaurant_id, table_no, items, total::text, status, created_at
	FROM orders`

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	blob, err := EncodeItems(o.Items)
	if err != nil {
		return err
	}
	err = r.db.QueryRow(ctx, `
		INSERT INTO orders (restaurant_id, table_no, items, total, status, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
		RETURNING id, created_at
	`, o.RestaurantID, o.TableNo, blob, o.Total.String(), string(o.Status)).Scan(&o.ID, &o.CreatedAt)
	if isForeignKeyViolation(err) {
		return ErrNotFound
	}
	return err
}

func (r *PGRepo) Get(ctx context.Context, restaurantID, id int64) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, selectOrder+` WHERE id=$1 AND restaurant_id=$2`, id, restaurantID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (r *PGRepo) List(ctx context.Context, f Filter) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, selectOrder+`
		WHERE restaurant_id=$1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <  $3)
		  AND ($4::text = '' OR status = $4::text)
		ORDER BY id DESC
	`, f.RestaurantID, nullTime(f.From), nullTime(f.To), string(f.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, restaurantID, id int64, status Status) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET status = $3
		WHERE id = $1 AND restaurant_id = $2
	`, id, restaurantID, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) AppendItem(ctx context.Context, restaurantID, orderID, menuItemID int64, qty int) (*Addition, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	it, err := menu.Lookup(ctx, tx, restaurantID, menuItemID)
	if errors.Is(err, menu.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	line, err := LineFromMenu(it, qty)
	if err != nil {
		return nil, err
	}

	o, err := scanOrder(tx.QueryRow(ctx, selectOrder+` WHERE id=$1 AND restaurant_id=$2 FOR UPDATE`, orderID, restaurantID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Append(line)
	blob, err := EncodeItems(o.Items)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE orders SET items = $3, total = $4
		WHERE id = $1 AND restaurant_id = $2
	`, o.ID, restaurantID, blob, o.Total.String()); err != nil {
		return nil, err
	}

	a := NewAddition(o, line)
	if err := tx.QueryRow(ctx, `
		INSERT INTO order_additions (order_id, restaurant_id, table_no, item_name, qty, price, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW())
		RETURNING id, created_at
	`, a.OrderID, a.RestaurantID, a.TableNo, a.ItemName, a.Qty, a.Price.String(), string(a.Status)).Scan(&a.ID, &a.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PGRepo) ListAdditions(ctx context.Context, f AdditionFilter) ([]Addition, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, restaurant_id, table_no, item_name, qty, price::text, status, created_at
		FROM order_additions
		WHERE restaurant_id=$1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <  $3)
		  AND ($4::text = '' OR status = $4::text)
		ORDER BY created_at ASC, id ASC
	`, f.RestaurantID, nullTime(f.From), nullTime(f.To), string(f.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Addition{}
	for rows.Next() {
		var (
			a             Addition
			price, status string
		)
		if err := rows.Scan(&a.ID, &a.OrderID, &a.RestaurantID, &a.TableNo, &a.ItemName, &a.Qty, &price, &status, &a.CreatedAt); err != nil {
			return nil, err
		}
		if a.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		a.Status = AdditionStatus(status)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PGRepo) MarkAdditionPreparing(ctx context.Context, restaurantID, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE order_additions SET status = $3
		WHERE id = $1 AND restaurant_id = $2
	`, id, restaurantID, string(AdditionPreparing))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o                   Order
		blob, total, status string
	)
	if err := row.Scan(&o.ID, &o.RestaurantID, &o.TableNo, &blob, &total, &status, &o.CreatedAt); err != nil {
		return nil, err
	}
	items, err := DecodeItems(blob)
	if err != nil {
		return nil, err
	}
	t, err := decimal.NewFromString(total)
	if err != nil {
		return nil, err
	}
	o.Items, o.Total, o.Status = items, t, Status(status)
	return &o, nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
