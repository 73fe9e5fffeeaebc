package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/MikeMC777/ordenes-mesa/docs"
	"github.com/MikeMC777/ordenes-mesa/internal/feed"
	"github.com/MikeMC777/ordenes-mesa/internal/httpx"
	"github.com/MikeMC777/ordenes-mesa/internal/menu"
	"github.com/MikeMC777/ordenes-mesa/internal/order"
	"github.com/MikeMC777/ordenes-mesa/internal/restaurant"
)

// app is everything the HTTP layer needs, wired once in main.
type app struct {
	orders      *order.Service
	restaurants restaurant.Repository
	menus       menu.Repository
	feed        *feed.Broadcaster
	auth        *httpx.Authenticator
	corsOrigins []string
	log         *zap.Logger
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func newRouter(a *app) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(a.log))
	if len(a.corsOrigins) > 0 {
		r.Use(cors.New(corsConfig(a.corsOrigins)))
	}

	r.GET("/healthz", healthHandler)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Customer side, no session.
	r.GET("/customer/:subdomain", customerMenuHandler(a.restaurants, a.menus))
	r.POST("/order", placeOrderHandler(a.orders))

	staff := r.Group("/", a.auth.Authenticate())

	api := staff.Group("/api")
	{
		floor := api.Group("/order", httpx.RequireRole(httpx.RoleAdmin, httpx.RoleKitchen))
		floor.POST("/:id/status", updateOrderStatusHandler(a.orders))
		floor.POST("/:id/add-item", addItemHandler(a.orders))

		api.GET("/order/:id/bill", httpx.RequireRole(httpx.RoleAdmin), billHandler(a.orders, a.restaurants))

		kitchen := api.Group("/kitchen", httpx.RequireRole(httpx.RoleKitchen, httpx.RoleAdmin))
		kitchen.GET("/additions", listAdditionsHandler(a.orders))
		kitchen.POST("/addition/:id/status", markAdditionHandler(a.orders))
	}

	staff.GET("/admin/orders/by-date", httpx.RequireRole(httpx.RoleAdmin, httpx.RoleSuperAdmin), ordersByDateHandler(a.orders))

	staff.GET("/events", httpx.RequireRole(httpx.RoleAdmin, httpx.RoleKitchen), eventsHandler(a.feed, feed.Orders, a.log))
	staff.GET("/events/additions", httpx.RequireRole(httpx.RoleKitchen), eventsHandler(a.feed, feed.Additions, a.log))

	return r
}
