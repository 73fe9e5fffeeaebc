package menu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.vals[i].(int64)
		case *string:
			*p = r.vals[i].(string)
		case *bool:
			*p = r.vals[i].(bool)
		case *time.Time:
			*p = r.vals[i].(time.Time)
		}
	}
	return nil
}

type fakeQuerier struct {
	row  fakeRow
	args []any
}

func (q *fakeQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	q.args = args
	return q.row
}

func TestLookup_ScopesToRestaurant(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{vals: []any{int64(7), int64(3), "Coffee", "15.00", "Drinks", "", true, time.Unix(0, 0)}}}
	it, err := Lookup(context.Background(), q, 3, 7)
	if err != nil {
		t.Fatal(err)
	}
	if it.Name != "Coffee" || !it.Price.Equal(decimal.NewFromInt(15)) || !it.Available {
		t.Fatalf("item=%+v", it)
	}
	if len(q.args) != 2 || q.args[0] != int64(7) || q.args[1] != int64(3) {
		t.Fatalf("args=%v, want item id then restaurant id", q.args)
	}
}

func TestLookup_NoRowIsNotFound(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}
	if _, err := Lookup(context.Background(), q, 3, 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
}
