package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/adilrkl/av-bayi/internal/checkout"
	"github.com/adilrkl/av-bayi/pkg/database"
	"github.com/adilrkl/av-bayi/pkg/logger"
	"github.com/adilrkl/av-bayi/prometheus"
)

// ValidateCartRequest defines the structure for cart validation requests
type ValidateCartRequest struct {
	Items      []checkout.CartItemInput `json:"items"`
	CouponCode string                   `json:"couponCode,omitempty"`
}

// ValidateCart reprices the client-held cart against the catalog and applies
// at most one coupon. Soft findings (missing product, over-stock, rejected
// coupon) land in the errors list; the call itself never fails for them.
func ValidateCart(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.CartValidationsCounter.Inc()

	var req ValidateCartRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse cart validation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid items"})
	}
	if req.Items == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid items"})
	}

	for _, item := range req.Items {
		if item.Quantity < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "quantity must be at least 1"})
		}
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	summary, err := checkout.ValidateCart(database.GetDB(), req.Items, req.CouponCode)
	if err != nil {
		log.Error("Cart validation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to validate cart"})
	}

	if req.CouponCode != "" && summary.Coupon == nil {
		reason := summary.CouponReason
		if reason == "" {
			reason = "other"
		}
		prometheus.RecordCouponRejection(reason)
	}

	log.Info("Cart validated",
		zap.Int("items", len(summary.Items)),
		zap.Float64("subtotal", summary.Subtotal),
		zap.Float64("discount", summary.Discount),
		zap.Int("soft_errors", len(summary.Errors)))

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": summary})
}
