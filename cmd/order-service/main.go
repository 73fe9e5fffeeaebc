package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-mesa/internal/config"
	"github.com/MikeMC777/ordenes-mesa/internal/db"
	"github.com/MikeMC777/ordenes-mesa/internal/events"
	"github.com/MikeMC777/ordenes-mesa/internal/feed"
	"github.com/MikeMC777/ordenes-mesa/internal/httpx"
	"github.com/MikeMC777/ordenes-mesa/internal/logging"
	"github.com/MikeMC777/ordenes-mesa/internal/memstore"
	"github.com/MikeMC777/ordenes-mesa/internal/menu"
	"github.com/MikeMC777/ordenes-mesa/internal/order"
	"github.com/MikeMC777/ordenes-mesa/internal/report"
	"github.com/MikeMC777/ordenes-mesa/internal/restaurant"
)

func init() {
	// Dashboards do arithmetic on totals; send them as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	cfg := config.Load()

	log, err := logging.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := issueToken(cfg, os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		return
	}

	if err := run(cfg, log); err != nil {
		log.Fatal("order-service stopped", zap.Error(err))
	}
}

// issueToken prints a session token, for operators and local testing.
func issueToken(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	user := fs.Int64("user", 0, "user id")
	role := fs.String("role", string(httpx.RoleAdmin), "admin | kitchen | superadmin")
	rid := fs.Int64("restaurant", 0, "restaurant id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	tok, err := httpx.NewAuthenticator(cfg.JWTSecret, cfg.TokenTTL).Issue(httpx.Identity{
		UserID:       *user,
		Role:         httpx.Role(*role),
		RestaurantID: *rid,
	})
	if err != nil {
		return err
	}
	fmt.Println(tok)
	return nil
}

func run(cfg config.Config, log *zap.Logger) error {
	cfg.Log(log)
	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc := cfg.Location()

	var (
		orders      order.Repository
		restaurants restaurant.Repository
		menus       menu.Repository
	)
	switch cfg.Store {
	case "memory":
		store := memstore.New()
		if err := seedDemo(store); err != nil {
			return err
		}
		orders, restaurants, menus = store.Orders(), store.Restaurants(), store.Menu()
		log.Warn("using in-memory store; data is lost on exit")
	case "postgres":
		pool, err := db.Connect(ctx, cfg.PostgresDSN, log)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := db.Migrate(ctx, pool); err != nil {
			return err
		}
		orders, restaurants, menus = order.NewPGRepo(pool), restaurant.NewPGRepo(pool), menu.NewPGRepo(pool)
	default:
		return fmt.Errorf("unknown STORE %q", cfg.Store)
	}

	bus := events.NewBus()
	defer bus.Close()

	if cfg.AMQPURL != "" {
		mirror, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, log)
		if err != nil {
			log.Warn("amqp mirror disabled", zap.Error(err))
		} else {
			defer mirror.Close()
			if err := bus.Forward(mirror.Forward); err != nil {
				return err
			}
			log.Info("mirroring changes to amqp", zap.String("exchange", cfg.AMQPExchange))
		}
	}

	svc := order.NewService(orders,
		order.WithNotifier(bus),
		order.WithLocation(loc),
		order.WithLogger(log.Named("order")))

	sched, err := report.Start(cfg.ReportCron, loc, report.NewJob(restaurants, svc, log.Named("report")))
	if err != nil {
		return err
	}
	defer sched.Stop()

	router := newRouter(&app{
		orders:      svc,
		restaurants: restaurants,
		menus:       menus,
		feed:        feed.New(svc, bus, cfg.FeedInterval, log.Named("feed")),
		auth:        httpx.NewAuthenticator(cfg.JWTSecret, cfg.TokenTTL),
		corsOrigins: cfg.CORSOrigins,
		log:         log.Named("http"),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end with the process context.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("order-service listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
