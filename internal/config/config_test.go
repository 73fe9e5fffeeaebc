package config

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "STORE", "TOKEN_TTL", "FEED_INTERVAL", "CORS_ORIGINS", "AMQP_URL", "AMQP_EXCHANGE", "REPORT_CRON"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if len(cfg.Warnings) != 0 {
		t.Fatalf("warnings=%q", cfg.Warnings)
	}
	if cfg.HTTPAddr != ":8082" || cfg.Store != "postgres" || cfg.FeedInterval != 2*time.Second || cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("cfg=%+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("cors=%v", cfg.CORSOrigins)
	}
	if cfg.AMQPURL != "" || cfg.AMQPExchange != "orders_topic" || cfg.ReportCron != "5 0 * * *" {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE", "Memory")
	t.Setenv("FEED_INTERVAL", "500ms")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	cfg := Load()
	if cfg.Store != "memory" || cfg.FeedInterval != 500*time.Millisecond {
		t.Fatalf("cfg=%+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("cors=%q", cfg.CORSOrigins)
	}
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("FEED_INTERVAL", "soon")
	t.Setenv("TOKEN_TTL", "-1h")
	cfg := Load()
	if cfg.FeedInterval != 2*time.Second || cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("feed=%s ttl=%s", cfg.FeedInterval, cfg.TokenTTL)
	}
	if len(cfg.Warnings) != 2 {
		t.Fatalf("warnings=%q", cfg.Warnings)
	}

	// Load runs before the logger exists; the fallbacks surface in Log.
	core, logs := observer.New(zapcore.WarnLevel)
	cfg.Log(zap.New(core))
	var got []string
	for _, e := range logs.All() {
		got = append(got, e.Message)
	}
	joined := strings.Join(got, "\n")
	if !strings.Contains(joined, `TOKEN_TTL="-1h"`) || !strings.Contains(joined, `FEED_INTERVAL="soon"`) {
		t.Fatalf("warnings logged=%q", got)
	}
}

func TestLocation(t *testing.T) {
	if got := (Config{Timezone: "UTC"}).Location(); got != time.UTC {
		t.Fatalf("loc=%v", got)
	}
	if got := (Config{Timezone: "Mars/Olympus"}).Location(); got != time.Local {
		t.Fatalf("loc=%v", got)
	}
}
