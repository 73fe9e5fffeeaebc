// Package menu provides read access to restaurant menus. Menu editing lives
// outside this service; orders only need lookups.
package menu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/ordenes-mesa/internal/apperr"
)

var (
	ErrNotFound = fmt.Errorf("menu item %w", apperr.ErrNotFound)
)

type Repository interface {
	ListAvailable(ctx context.Context, restaurantID int64) ([]Item, error)
}

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Lookup reads one item, only if it belongs to restaurantID. Order writes
// call it inside their own transaction.
func Lookup(ctx context.Context, q Querier, restaurantID, id int64) (*Item, error) {
	it, err := scanItem(q.QueryRow(ctx, `
		SELECT id, restaurant_id, name, price::text, COALESCE(category,''), COALESCE(image,''), available, created_at
		FROM menu WHERE id=$1 AND restaurant_id=$2
	`, id, restaurantID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) ListAvailable(ctx context.Context, restaurantID int64) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, restaurant_id, name, price::text, COALESCE(category,''), COALESCE(image,''), available, created_at
		FROM menu
		WHERE restaurant_id=$1 AND available
		ORDER BY category, id
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

func scanItem(row pgx.Row) (*Item, error) {
	var (
		it    Item
		price string
	)
	if err := row.Scan(&it.ID, &it.RestaurantID, &it.Name, &price, &it.Category, &it.Image, &it.Available, &it.CreatedAt); err != nil {
		return nil, err
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	it.Price = p
	return &it, nil
}
