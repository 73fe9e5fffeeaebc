package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-mesa/internal/feed"
	"github.com/MikeMC777/ordenes-mesa/internal/httpx"
	"github.com/MikeMC777/ordenes-mesa/internal/menu"
	"github.com/MikeMC777/ordenes-mesa/internal/order"
	"github.com/MikeMC777/ordenes-mesa/internal/restaurant"
)

var success = gin.H{"success": true}

// pathID reads a numeric path parameter. Anything that is not a positive
// integer cannot name a row, so it is reported as not found.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		httpx.Fail(c, order.ErrNotFound)
		return 0, false
	}
	return id, true
}

// tenant is the restaurant the caller acts for. Superadmins have no home
// restaurant and name one with ?restaurant_id=.
func tenant(c *gin.Context) (int64, bool) {
	id, ok := httpx.IdentityFrom(c)
	if !ok {
		httpx.Fail(c, httpx.ErrUnauthenticated)
		return 0, false
	}
	rid := id.RestaurantID
	if id.Role == httpx.RoleSuperAdmin {
		if v := c.Query("restaurant_id"); v != "" {
			rid, _ = strconv.ParseInt(v, 10, 64)
		}
	}
	if rid <= 0 {
		httpx.BadRequest(c, "restaurant_id is required")
		return 0, false
	}
	return rid, true
}

// POST /order
func placeOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		if _, err := svc.CreateOrder(c.Request.Context(), req.RestaurantID, req.Table, req.Items); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, success)
	}
}

// POST /api/order/:id/status
func updateOrderStatusHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid, ok := tenant(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, order.ErrInvalidStatus)
			return
		}
		if err := svc.SetStatus(c.Request.Context(), rid, id, order.Status(req.Status)); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, success)
	}
}

// POST /api/order/:id/add-item
func addItemHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid, ok := tenant(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var req order.AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		if _, err := svc.AppendItem(c.Request.Context(), rid, id, int64(req.ItemID), req.Qty); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, success)
	}
}

// GET /api/order/:id/bill
func billHandler(svc *order.Service, restaurants restaurant.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid, ok := tenant(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		b, err := svc.Bill(c.Request.Context(), rid, id)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		if r, err := restaurants.GetByID(c.Request.Context(), rid); err == nil {
			b.RestaurantName = r.Name
		}
		c.JSON(http.StatusOK, b)
	}
}

// GET /api/kitchen/additions
func listAdditionsHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid, ok := tenant(c)
		if !ok {
			return
		}
		out, err := svc.ListNew(c.Request.Context(), rid)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// POST /api/kitchen/addition/:id/status
func markAdditionHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid, ok := tenant(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		// The body is optional; when present it may only ask for Preparing.
		var req order.UpdateStatusRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil || (req.Status != "" && req.Status != string(order.AdditionPreparing)) {
				httpx.Fail(c, order.ErrInvalidStatus)
				return
			}
		}
		if err := svc.MarkPreparing(c.Request.Context(), rid, id); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, success)
	}
}

// GET /admin/orders/by-date?date=YYYY-MM-DD
func ordersByDateHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid, ok := tenant(c)
		if !ok {
			return
		}
		day, err := svc.ParseDay(c.Query("date"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		rep, err := svc.DailyRevenue(c.Request.Context(), rid, day)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, rep)
	}
}

// GET /customer/:subdomain?table=N
func customerMenuHandler(restaurants restaurant.Repository, menus menu.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := restaurants.GetBySubdomain(c.Request.Context(), strings.ToLower(c.Param("subdomain")))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		table, err := strconv.Atoi(c.Query("table"))
		if err != nil || table <= 0 {
			httpx.BadRequest(c, "table must be a positive number")
			return
		}
		items, err := menus.ListAvailable(c.Request.Context(), r.ID)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"restaurant_id":   r.ID,
			"restaurant_name": r.Name,
			"table":           table,
			"menu":            items,
		})
	}
}

// GET /events and /events/additions
func eventsHandler(b *feed.Broadcaster, kind feed.Kind, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := httpx.IdentityFrom(c)
		if !ok {
			httpx.Fail(c, httpx.ErrUnauthenticated)
			return
		}
		h := c.Writer.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)

		err := b.Run(c.Request.Context(), id.RestaurantID, kind, func(payload any) error {
			if err := sse.Encode(c.Writer, sse.Event{Data: payload}); err != nil {
				return err
			}
			c.Writer.Flush()
			return nil
		})
		if err != nil {
			log.Debug("event stream closed", zap.String("feed", string(kind)), zap.Error(err))
		}
	}
}

func healthHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
