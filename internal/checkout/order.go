package checkout

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/adilrkl/av-bayi/internal/model"
)

// Sentinel errors surfaced by PlaceOrder. Everything else coming out of the
// transaction is a generic store failure.
var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrProductNotFound = errors.New("product not found")
	ErrStockConflict   = errors.New("insufficient stock")
	ErrCouponExhausted = errors.New("coupon usage limit reached")
	ErrCouponRejected  = errors.New("coupon not applicable")
)

// PlaceOrderInput carries a checkout submission. TotalAmount and per-line
// prices are accepted for wire compatibility but recomputed server-side.
type PlaceOrderInput struct {
	Items           []CartItemInput `json:"items"`
	ShippingAddress json.RawMessage `json:"shippingAddress"`
	BillingAddress  json.RawMessage `json:"billingAddress"`
	CouponCode      string          `json:"couponCode,omitempty"`
	TotalAmount     float64         `json:"totalAmount"`
	PaymentStatus   string          `json:"paymentStatus,omitempty"`
}

// PlaceOrder commits a checkout as a single transaction: insert the order
// with its line items, decrement stock per line, and bump the coupon's use
// count. All three effects commit together or not at all.
//
// Stock decrements and the coupon increment are conditional updates; a row
// that no longer satisfies the precondition aborts the transaction with
// ErrStockConflict or ErrCouponExhausted so the caller can re-validate the
// cart instead of overselling.
func PlaceOrder(db *gorm.DB, userID uint, in PlaceOrderInput) (*model.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var order model.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		items := make([]model.OrderItem, 0, len(in.Items))
		var subtotal float64

		for _, line := range in.Items {
			var product model.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %d", ErrProductNotFound, line.ProductID)
				}
				return err
			}

			// Price snapshot from the product row, never from the client
			price := product.EffectivePrice()
			subtotal += price * float64(line.Quantity)

			items = append(items, model.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     price,
				Variant:   line.Variant,
			})
		}

		var discount float64
		var couponCode *string
		if in.CouponCode != "" {
			var coupon model.Coupon
			if err := tx.Where("code = ?", in.CouponCode).First(&coupon).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrCouponRejected, in.CouponCode)
				}
				return err
			}

			var rejection *CouponRejection
			discount, rejection = ResolveCoupon(&coupon, subtotal, time.Now())
			if rejection != nil {
				return fmt.Errorf("%w: %s", ErrCouponRejected, rejection.Message)
			}
			couponCode = &in.CouponCode
		}

		paymentStatus := in.PaymentStatus
		if paymentStatus == "" {
			paymentStatus = model.PaymentPending
		}

		order = model.Order{
			UserID:          userID,
			TotalAmount:     subtotal - discount,
			Status:          StatusPending.String(),
			PaymentStatus:   paymentStatus,
			ShippingAddress: string(in.ShippingAddress),
			BillingAddress:  string(in.BillingAddress),
			CouponCode:      couponCode,
			Items:           items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range in.Items {
			res := tx.Model(&model.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: product %d", ErrStockConflict, line.ProductID)
			}
		}

		if couponCode != nil {
			res := tx.Model(&model.Coupon{}).
				Where("code = ? AND (usage_limit IS NULL OR used_count < usage_limit)", *couponCode).
				UpdateColumn("used_count", gorm.Expr("used_count + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrCouponExhausted
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}
