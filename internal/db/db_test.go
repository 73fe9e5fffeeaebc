package db

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestSchema_Idempotent(t *testing.T) {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stripComments(stmt))
		if stmt == "" {
			continue
		}
		if !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Fatalf("statement is not re-runnable:\n%s", stmt)
		}
	}
	for _, table := range []string{"restaurants", "users", "menu", "orders", "order_additions"} {
		if !strings.Contains(schema, "CREATE TABLE IF NOT EXISTS "+table+" ") {
			t.Fatalf("missing table %s", table)
		}
	}
}

func TestConnect_BadDSN(t *testing.T) {
	if _, err := Connect(context.Background(), "postgres://%zz", zap.NewNop()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConnect_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Connect(ctx, "postgres://u:p@127.0.0.1:1/x?connect_timeout=1", zap.NewNop())
	if err == nil {
		t.Fatal("expected error on canceled context")
	}
}

func stripComments(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "--") {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
