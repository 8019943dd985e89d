package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/adilrkl/av-bayi/internal/checkout"
	mid "github.com/adilrkl/av-bayi/internal/middleware"
	"github.com/adilrkl/av-bayi/internal/model"
	"github.com/adilrkl/av-bayi/pkg/database"
	"github.com/adilrkl/av-bayi/pkg/logger"
	"github.com/adilrkl/av-bayi/prometheus"
)

// CreateOrder places an order for the authenticated caller. Order insert,
// stock decrements and the coupon increment commit in one transaction.
func CreateOrder(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := mid.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}

	var req checkout.PlaceOrderInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse order request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("transaction")(time.Now())
	order, err := checkout.PlaceOrder(database.GetDB(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "cart is empty"})
		case errors.Is(err, checkout.ErrProductNotFound):
			prometheus.RecordOrderFailure("product_not_found")
			log.Warn("Order referenced unknown product", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
		case errors.Is(err, checkout.ErrStockConflict):
			prometheus.StockConflictsCounter.Inc()
			prometheus.RecordOrderFailure("stock_conflict")
			log.Warn("Order lost a stock race", zap.Uint("user_id", userID), zap.Error(err))
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "insufficient stock, please re-validate your cart"})
		case errors.Is(err, checkout.ErrCouponExhausted), errors.Is(err, checkout.ErrCouponRejected):
			prometheus.RecordOrderFailure("coupon")
			log.Warn("Order coupon rejected", zap.Uint("user_id", userID), zap.Error(err))
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "coupon is no longer valid"})
		default:
			prometheus.RecordOrderFailure("store")
			log.Error("Order transaction failed", zap.Uint("user_id", userID), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to create order"})
		}
	}

	prometheus.OrdersPlacedCounter.Inc()
	log.Info("Order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", userID),
		zap.Float64("total_amount", order.TotalAmount),
		zap.Int("items", len(order.Items)))

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": order})
}

// ListMyOrders returns the caller's orders, newest first, with line items
// and product snapshots
func ListMyOrders(c echo.Context) error {
	log := logger.FromEcho(c)

	userID, ok := mid.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}

	var orders []model.Order
	result := database.GetDB().
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		log.Error("Failed to list orders", zap.Uint("user_id", userID), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to fetch orders"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": orders})
}

// ListAllOrders returns every order for the admin panel
func ListAllOrders(c echo.Context) error {
	log := logger.FromEcho(c)

	var orders []model.Order
	result := database.GetDB().
		Preload("Items.Product").
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		log.Error("Failed to list orders", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch orders"})
	}

	return c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus moves an order through its lifecycle. Illegal moves
// (e.g. DELIVERED back to PENDING) are rejected with 409.
func UpdateOrderStatus(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("order_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	next := checkout.Status(req.Status)
	if !next.Valid() {
		log.Warn("Unknown order status value",
			zap.String("order_id", id),
			zap.String("status", req.Status))
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid status value"})
	}

	var order model.Order
	if err := database.GetDB().First(&order, id).Error; err != nil {
		log.Error("Order not found", zap.String("order_id", id), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
	}

	if err := checkout.Transition(checkout.Status(order.Status), next); err != nil {
		log.Warn("Rejected order status transition",
			zap.String("order_id", id),
			zap.String("from", order.Status),
			zap.String("to", req.Status))
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}

	if err := database.GetDB().Model(&order).Update("status", next.String()).Error; err != nil {
		log.Error("Failed to update order status", zap.String("order_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update order"})
	}

	prometheus.RecordAdminOperation("order", "status_update")
	log.Info("Order status updated",
		zap.String("order_id", id),
		zap.String("status", next.String()))
	return c.JSON(http.StatusOK, order)
}
