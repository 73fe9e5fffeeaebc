// Package restaurant resolves tenants. Provisioning happens elsewhere; this
// service only reads.
package restaurant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeMC777/ordenes-mesa/internal/apperr"
)

var (
	ErrNotFound = fmt.Errorf("restaurant %w", apperr.ErrNotFound)
)

type Restaurant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Subdomain string    `json:"subdomain"`
	GSTIN     string    `json:"gstin,omitempty"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Restaurant, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*Restaurant, error)
	List(ctx context.Context) ([]Restaurant, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const selectRestaurant = `
	SELECT id, name, subdomain, COALESCE(gstin,''), COALESCE(address,''), COALESCE(phone,''), created_at
	FROM restaurants`

func (r *PGRepo) GetByID(ctx context.Context, id int64) (*Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return scanOne(r.db.QueryRow(ctx, selectRestaurant+` WHERE id=$1`, id))
}

func (r *PGRepo) GetBySubdomain(ctx context.Context, subdomain string) (*Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return scanOne(r.db.QueryRow(ctx, selectRestaurant+` WHERE subdomain=$1`, subdomain))
}

func (r *PGRepo) List(ctx context.Context) ([]Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, selectRestaurant+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Restaurant
	for rows.Next() {
		var x Restaurant
		if err := rows.Scan(&x.ID, &x.Name, &x.Subdomain, &x.GSTIN, &x.Address, &x.Phone, &x.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, rows.Err()
}

func scanOne(row pgx.Row) (*Restaurant, error) {
	var x Restaurant
	err := row.Scan(&x.ID, &x.Name, &x.Subdomain, &x.GSTIN, &x.Address, &x.Phone, &x.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &x, nil
}
