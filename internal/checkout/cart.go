package checkout

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/adilrkl/av-bayi/internal/model"
)

// CartItemInput is one client-supplied cart line. The client also holds a
// price snapshot locally, but it is never trusted here; prices are always
// resolved from the product row.
type CartItemInput struct {
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price,omitempty"`
	Variant   *string `json:"variant,omitempty"`
}

// ValidatedItem is a cart line priced from the catalog.
type ValidatedItem struct {
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Variant   *string `json:"variant,omitempty"`
}

// CartSummary is the result of a validation pass: priced lines, totals, the
// resolved coupon and every soft error collected along the way. CouponReason
// is set when a requested coupon was rejected; it feeds metrics, not the
// response body.
type CartSummary struct {
	Items        []ValidatedItem `json:"items"`
	Subtotal     float64         `json:"subtotal"`
	Discount     float64         `json:"discount"`
	Total        float64         `json:"total"`
	Coupon       *model.Coupon   `json:"coupon"`
	Errors       []string        `json:"errors"`
	CouponReason string          `json:"-"`
}

// Coupon rejection reasons, used as metric labels.
const (
	CouponReasonExpired    = "expired"
	CouponReasonUsageLimit = "usage_limit"
	CouponReasonMinOrder   = "min_order"
	CouponReasonNotFound   = "not_found"
)

// CouponRejection pairs a machine-readable reason with the soft error text
// shown to the shopper.
type CouponRejection struct {
	Reason  string
	Message string
}

// PriceCart resolves cart lines against product rows. A missing product
// drops the line and records a soft error; requesting more than the current
// stock keeps the line but records a soft error, leaving the accept/reject
// decision to the caller. Unit price is the discount price when set.
func PriceCart(items []CartItemInput, products map[uint]*model.Product) ([]ValidatedItem, float64, []string) {
	validated := make([]ValidatedItem, 0, len(items))
	var subtotal float64
	var errs []string

	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			errs = append(errs, fmt.Sprintf("Product %d not found", item.ProductID))
			continue
		}

		if product.Stock < item.Quantity {
			errs = append(errs, fmt.Sprintf("Product %s is out of stock (Available: %d)", product.Name, product.Stock))
		}

		price := product.EffectivePrice()
		subtotal += price * float64(item.Quantity)

		validated = append(validated, ValidatedItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
			Name:      product.Name,
			Image:     product.FirstImage(),
			Variant:   item.Variant,
		})
	}

	return validated, subtotal, errs
}

// ResolveCoupon applies a coupon to a subtotal. Expiration, usage limit and
// minimum order amount are checked in that order; the first failing check
// rejects the coupon with zero discount. A FIXED discount is not clamped to
// the subtotal.
func ResolveCoupon(coupon *model.Coupon, subtotal float64, now time.Time) (float64, *CouponRejection) {
	if coupon == nil {
		return 0, nil
	}

	if coupon.ExpirationDate != nil && coupon.ExpirationDate.Before(now) {
		return 0, &CouponRejection{Reason: CouponReasonExpired, Message: "Coupon expired"}
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return 0, &CouponRejection{Reason: CouponReasonUsageLimit, Message: "Coupon usage limit reached"}
	}
	if coupon.MinOrderAmount != nil && subtotal < *coupon.MinOrderAmount {
		return 0, &CouponRejection{
			Reason:  CouponReasonMinOrder,
			Message: fmt.Sprintf("Minimum order amount for this coupon is %g", *coupon.MinOrderAmount),
		}
	}

	if coupon.DiscountType == model.DiscountPercentage {
		return subtotal * coupon.Value / 100, nil
	}
	return coupon.Value, nil
}

// ValidateCart recomputes cart totals from authoritative product prices and
// stock, applying at most one coupon. Pure read-and-compute; performs no
// writes and is safe to call repeatedly.
func ValidateCart(db *gorm.DB, items []CartItemInput, couponCode string) (*CartSummary, error) {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	var rows []model.Product
	if len(ids) > 0 {
		if err := db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("load products: %w", err)
		}
	}
	products := make(map[uint]*model.Product, len(rows))
	for i := range rows {
		products[rows[i].ID] = &rows[i]
	}

	validated, subtotal, errs := PriceCart(items, products)

	var discount float64
	var applied *model.Coupon
	var couponReason string
	if couponCode != "" {
		var coupon model.Coupon
		result := db.Where("code = ?", couponCode).First(&coupon)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				errs = append(errs, "Invalid coupon code")
				couponReason = CouponReasonNotFound
			} else {
				return nil, fmt.Errorf("load coupon: %w", result.Error)
			}
		} else {
			var rejection *CouponRejection
			discount, rejection = ResolveCoupon(&coupon, subtotal, time.Now())
			if rejection == nil {
				applied = &coupon
			} else {
				errs = append(errs, rejection.Message)
				couponReason = rejection.Reason
			}
		}
	}

	if errs == nil {
		errs = []string{}
	}

	return &CartSummary{
		Items:        validated,
		Subtotal:     subtotal,
		Discount:     discount,
		Total:        subtotal - discount,
		Coupon:       applied,
		Errors:       errs,
		CouponReason: couponReason,
	}, nil
}
