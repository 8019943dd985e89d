package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adilrkl/av-bayi/internal/model"
)

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }
func ptrTime(v time.Time) *time.Time {
	return &v
}

func catalogFixture() map[uint]*model.Product {
	return map[uint]*model.Product{
		1: {ID: 1, Name: "Super Hunter 12G", Price: 500, Stock: 10, Images: `["https://cdn.example.com/12g.jpg"]`},
		2: {ID: 2, Name: "Trap Ammo 24gr", Price: 100, DiscountPrice: ptrFloat(80), Stock: 200},
		3: {ID: 3, Name: "Camo Vest", Price: 250, Stock: 1},
	}
}

func TestPriceCart_NoErrors(t *testing.T) {
	items := []CartItemInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 5},
	}

	validated, subtotal, errs := PriceCart(items, catalogFixture())

	require.Empty(t, errs)
	require.Len(t, validated, 2)
	assert.Equal(t, 500.0, validated[0].Price)
	assert.Equal(t, "Super Hunter 12G", validated[0].Name)
	assert.Equal(t, "https://cdn.example.com/12g.jpg", validated[0].Image)
	// Discount price wins over list price
	assert.Equal(t, 80.0, validated[1].Price)
	assert.Equal(t, 500.0*2+80.0*5, subtotal)
}

func TestPriceCart_MissingProductIsSoftError(t *testing.T) {
	items := []CartItemInput{
		{ProductID: 99, Quantity: 1},
		{ProductID: 1, Quantity: 1},
	}

	validated, subtotal, errs := PriceCart(items, catalogFixture())

	// Missing line dropped, remaining line still priced and summed
	require.Len(t, validated, 1)
	assert.Equal(t, uint(1), validated[0].ProductID)
	assert.Equal(t, 500.0, subtotal)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "99")
	assert.Contains(t, errs[0], "not found")
}

func TestPriceCart_OverStockKeepsLine(t *testing.T) {
	items := []CartItemInput{{ProductID: 3, Quantity: 5}}

	validated, subtotal, errs := PriceCart(items, catalogFixture())

	require.Len(t, validated, 1)
	assert.Equal(t, 250.0*5, subtotal)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Camo Vest")
	assert.Contains(t, errs[0], "out of stock")
}

func TestPriceCart_EmptyCart(t *testing.T) {
	validated, subtotal, errs := PriceCart(nil, catalogFixture())

	assert.Empty(t, validated)
	assert.Zero(t, subtotal)
	assert.Empty(t, errs)
}

func TestResolveCoupon(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name         string
		coupon       *model.Coupon
		subtotal     float64
		wantDiscount float64
		wantErr      string
		wantReason   string
	}{
		{
			name:     "nil coupon",
			coupon:   nil,
			subtotal: 1000,
		},
		{
			name:         "percentage 10 of 1000",
			coupon:       &model.Coupon{Code: "SAVE10", DiscountType: model.DiscountPercentage, Value: 10},
			subtotal:     1000,
			wantDiscount: 100,
		},
		{
			name:         "fixed 200 of 1000",
			coupon:       &model.Coupon{Code: "FLAT200", DiscountType: model.DiscountFixed, Value: 200},
			subtotal:     1000,
			wantDiscount: 200,
		},
		{
			name:         "fixed larger than subtotal is not clamped",
			coupon:       &model.Coupon{Code: "FLAT2000", DiscountType: model.DiscountFixed, Value: 2000},
			subtotal:     1000,
			wantDiscount: 2000,
		},
		{
			name:     "expired",
			coupon:   &model.Coupon{Code: "OLD", DiscountType: model.DiscountPercentage, Value: 50, ExpirationDate: ptrTime(past)},
			subtotal:   1000,
			wantErr:    "Coupon expired",
			wantReason: CouponReasonExpired,
		},
		{
			name:     "usage limit reached",
			coupon:   &model.Coupon{Code: "FULL", DiscountType: model.DiscountFixed, Value: 200, UsageLimit: ptrInt(5), UsedCount: 5},
			subtotal:   1000,
			wantErr:    "Coupon usage limit reached",
			wantReason: CouponReasonUsageLimit,
		},
		{
			name:     "expiration checked before usage limit",
			coupon:   &model.Coupon{Code: "OLDFULL", DiscountType: model.DiscountFixed, Value: 200, ExpirationDate: ptrTime(past), UsageLimit: ptrInt(5), UsedCount: 5},
			subtotal:   1000,
			wantErr:    "Coupon expired",
			wantReason: CouponReasonExpired,
		},
		{
			name:     "below minimum order amount",
			coupon:   &model.Coupon{Code: "MIN500", DiscountType: model.DiscountPercentage, Value: 10, MinOrderAmount: ptrFloat(500)},
			subtotal:   400,
			wantErr:    "Minimum order amount",
			wantReason: CouponReasonMinOrder,
		},
		{
			name:         "exactly at minimum order amount applies",
			coupon:       &model.Coupon{Code: "MIN500", DiscountType: model.DiscountPercentage, Value: 10, MinOrderAmount: ptrFloat(500)},
			subtotal:     500,
			wantDiscount: 50,
		},
		{
			name:         "not yet expired applies",
			coupon:       &model.Coupon{Code: "FRESH", DiscountType: model.DiscountFixed, Value: 50, ExpirationDate: ptrTime(future)},
			subtotal:     1000,
			wantDiscount: 50,
		},
		{
			name:         "under usage limit applies",
			coupon:       &model.Coupon{Code: "ALMOST", DiscountType: model.DiscountFixed, Value: 50, UsageLimit: ptrInt(5), UsedCount: 4},
			subtotal:     1000,
			wantDiscount: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount, rejection := ResolveCoupon(tt.coupon, tt.subtotal, now)

			assert.Equal(t, tt.wantDiscount, discount)
			if tt.wantErr == "" {
				assert.Nil(t, rejection)
			} else {
				require.NotNil(t, rejection)
				assert.Contains(t, rejection.Message, tt.wantErr)
				assert.Equal(t, tt.wantReason, rejection.Reason)
			}
		})
	}
}

func TestCartTotals_NoCouponMeansTotalEqualsSubtotal(t *testing.T) {
	items := []CartItemInput{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 2},
	}

	_, subtotal, errs := PriceCart(items, catalogFixture())
	require.Empty(t, errs)

	discount, rejection := ResolveCoupon(nil, subtotal, time.Now())
	require.Nil(t, rejection)
	assert.Zero(t, discount)
	assert.Equal(t, subtotal, subtotal-discount)
}

func TestCartTotals_FixedCouponCanGoNegative(t *testing.T) {
	// Documented edge case: a FIXED coupon above the subtotal yields a
	// negative total. Asserting current behavior, not endorsing it.
	coupon := &model.Coupon{Code: "BIG", DiscountType: model.DiscountFixed, Value: 2000}

	discount, rejection := ResolveCoupon(coupon, 1000, time.Now())

	require.Nil(t, rejection)
	assert.Equal(t, 2000.0, discount)
	assert.Equal(t, -1000.0, 1000-discount)
}
