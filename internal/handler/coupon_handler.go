package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/adilrkl/av-bayi/internal/model"
	"github.com/adilrkl/av-bayi/pkg/database"
	"github.com/adilrkl/av-bayi/pkg/logger"
	"github.com/adilrkl/av-bayi/prometheus"
)

// CouponRequest defines the structure for coupon creation/update requests
type CouponRequest struct {
	Code           string   `json:"code"`
	DiscountType   string   `json:"discount_type"`
	Value          float64  `json:"value"`
	ExpirationDate *string  `json:"expiration_date"`
	UsageLimit     *int     `json:"usage_limit"`
	MinOrderAmount *float64 `json:"min_order_amount"`
}

func (r *CouponRequest) expiration() (*time.Time, error) {
	if r.ExpirationDate == nil || *r.ExpirationDate == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *r.ExpirationDate)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// ListCoupons returns all coupons for the admin panel
func ListCoupons(c echo.Context) error {
	log := logger.FromEcho(c)

	var coupons []model.Coupon
	if err := database.GetDB().Order("created_at desc").Find(&coupons).Error; err != nil {
		log.Error("Failed to list coupons", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve coupons"})
	}

	return c.JSON(http.StatusOK, coupons)
}

// CreateCoupon handles creating a new coupon
func CreateCoupon(c echo.Context) error {
	log := logger.FromEcho(c)

	var req CouponRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Code == "" || req.Value <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code and a positive value are required"})
	}
	if req.DiscountType != model.DiscountPercentage && req.DiscountType != model.DiscountFixed {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "discount_type must be PERCENTAGE or FIXED"})
	}

	expiration, err := req.expiration()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid expiration_date"})
	}

	var count int64
	database.GetDB().Model(&model.Coupon{}).Where("code = ?", req.Code).Count(&count)
	if count > 0 {
		log.Warn("Coupon code already exists", zap.String("code", req.Code))
		return c.JSON(http.StatusConflict, echo.Map{"error": "coupon code already exists"})
	}

	coupon := model.Coupon{
		Code:           req.Code,
		DiscountType:   req.DiscountType,
		Value:          req.Value,
		ExpirationDate: expiration,
		UsageLimit:     req.UsageLimit,
		MinOrderAmount: req.MinOrderAmount,
	}

	if err := database.GetDB().Create(&coupon).Error; err != nil {
		log.Error("Failed to create coupon", zap.String("code", req.Code), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create coupon"})
	}

	prometheus.RecordAdminOperation("coupon", "create")
	log.Info("Coupon created", zap.Uint("coupon_id", coupon.ID), zap.String("code", coupon.Code))
	return c.JSON(http.StatusCreated, coupon)
}

// UpdateCoupon handles updating an existing coupon. UsedCount is owned by
// order placement and never written here.
func UpdateCoupon(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var req CouponRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("coupon_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	var coupon model.Coupon
	if err := database.GetDB().First(&coupon, id).Error; err != nil {
		log.Error("Coupon not found for update", zap.String("coupon_id", id), zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "coupon not found"})
	}

	if req.DiscountType != model.DiscountPercentage && req.DiscountType != model.DiscountFixed {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "discount_type must be PERCENTAGE or FIXED"})
	}

	expiration, err := req.expiration()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid expiration_date"})
	}

	coupon.Code = req.Code
	coupon.DiscountType = req.DiscountType
	coupon.Value = req.Value
	coupon.ExpirationDate = expiration
	coupon.UsageLimit = req.UsageLimit
	coupon.MinOrderAmount = req.MinOrderAmount

	if err := database.GetDB().Save(&coupon).Error; err != nil {
		log.Error("Failed to update coupon", zap.String("coupon_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update coupon"})
	}

	prometheus.RecordAdminOperation("coupon", "update")
	log.Info("Coupon updated", zap.String("coupon_id", id), zap.String("code", coupon.Code))
	return c.JSON(http.StatusOK, coupon)
}

// DeleteCoupon handles deleting a coupon. Past orders keep their coupon code
// string; nothing is released or recomputed.
func DeleteCoupon(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Coupon{}, id)
	if result.Error != nil {
		log.Error("Failed to delete coupon", zap.String("coupon_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete coupon"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "coupon not found"})
	}

	prometheus.RecordAdminOperation("coupon", "delete")
	log.Info("Coupon deleted", zap.String("coupon_id", id))
	return c.NoContent(http.StatusNoContent)
}
