package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adilrkl/av-bayi/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.Brand{},
		&model.Product{},
		&model.Coupon{},
		&model.Order{},
		&model.OrderItem{},
	))
	return db
}

func seedCheckoutCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	category := model.Category{Name: "Shotguns", Slug: "shotguns"}
	require.NoError(t, db.Create(&category).Error)

	products := []model.Product{
		{ID: 1, Name: "Super Hunter 12G", Slug: "super-hunter-12g", Price: 500, Stock: 10, CategoryID: category.ID},
		{ID: 2, Name: "Trap Ammo 24gr", Slug: "trap-ammo-24gr", Price: 100, DiscountPrice: ptrFloat(80), Stock: 200, CategoryID: category.ID},
		{ID: 3, Name: "Camo Vest", Slug: "camo-vest", Price: 250, Stock: 1, CategoryID: category.ID},
	}
	require.NoError(t, db.Create(&products).Error)
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p model.Product
	require.NoError(t, db.First(&p, id).Error)
	return p.Stock
}

func TestPlaceOrder_CommitsOrderStockAndCouponTogether(t *testing.T) {
	db := newTestDB(t)
	seedCheckoutCatalog(t, db)
	require.NoError(t, db.Create(&model.Coupon{
		Code:         "SAVE10",
		DiscountType: model.DiscountPercentage,
		Value:        10,
		UsageLimit:   ptrInt(5),
		UsedCount:    2,
	}).Error)

	order, err := PlaceOrder(db, 42, PlaceOrderInput{
		Items: []CartItemInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 5},
		},
		CouponCode: "SAVE10",
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	// Subtotal 500*2 + 80*5 = 1400, minus 10%
	assert.Equal(t, 1400.0-140.0, order.TotalAmount)
	assert.Equal(t, StatusPending.String(), order.Status)
	assert.Equal(t, model.PaymentPending, order.PaymentStatus)
	require.NotNil(t, order.CouponCode)
	assert.Equal(t, "SAVE10", *order.CouponCode)

	var stored model.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	require.Len(t, stored.Items, 2)

	assert.Equal(t, 8, productStock(t, db, 1))
	assert.Equal(t, 195, productStock(t, db, 2))

	// One placement bumps usedCount by exactly 1, however many lines it has
	var coupon model.Coupon
	require.NoError(t, db.Where("code = ?", "SAVE10").First(&coupon).Error)
	assert.Equal(t, 3, coupon.UsedCount)
}

func TestPlaceOrder_SnapshotsCatalogPricesNotClientPrices(t *testing.T) {
	db := newTestDB(t)
	seedCheckoutCatalog(t, db)

	order, err := PlaceOrder(db, 42, PlaceOrderInput{
		Items:       []CartItemInput{{ProductID: 2, Quantity: 1, Price: 0.01}},
		TotalAmount: 0.01,
	})
	require.NoError(t, err)

	// Discount price wins over list price; the client figures are ignored
	assert.Equal(t, 80.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 80.0, order.Items[0].Price)
}

func TestPlaceOrder_StockConflictRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	seedCheckoutCatalog(t, db)

	// Second line wants 3 of a product with stock 1; the first line's
	// decrement has already run by then and must roll back with the rest
	_, err := PlaceOrder(db, 42, PlaceOrderInput{
		Items: []CartItemInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 3, Quantity: 3},
		},
	})
	require.ErrorIs(t, err, ErrStockConflict)

	assert.Zero(t, countRows(t, db, &model.Order{}))
	assert.Zero(t, countRows(t, db, &model.OrderItem{}))
	assert.Equal(t, 10, productStock(t, db, 1))
	assert.Equal(t, 1, productStock(t, db, 3))
}

func TestPlaceOrder_CouponExhaustionRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	seedCheckoutCatalog(t, db)
	require.NoError(t, db.Create(&model.Coupon{
		Code:         "LAST1",
		DiscountType: model.DiscountFixed,
		Value:        50,
		UsageLimit:   ptrInt(1),
		UsedCount:    0,
	}).Error)

	// A rival checkout claims the final use after validation has passed but
	// before the usage increment runs. Hooking the order insert reproduces
	// that window inside the same transaction.
	err := db.Callback().Create().After("gorm:create").Register("rival_checkout", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*model.Order); !ok {
			return
		}
		tx.Session(&gorm.Session{NewDB: true}).
			Model(&model.Coupon{}).
			Where("code = ?", "LAST1").
			UpdateColumn("used_count", gorm.Expr("usage_limit"))
	})
	require.NoError(t, err)

	_, err = PlaceOrder(db, 42, PlaceOrderInput{
		Items:      []CartItemInput{{ProductID: 1, Quantity: 1}},
		CouponCode: "LAST1",
	})
	require.ErrorIs(t, err, ErrCouponExhausted)

	assert.Zero(t, countRows(t, db, &model.Order{}))
	assert.Zero(t, countRows(t, db, &model.OrderItem{}))
	assert.Equal(t, 10, productStock(t, db, 1))

	var coupon model.Coupon
	require.NoError(t, db.Where("code = ?", "LAST1").First(&coupon).Error)
	assert.Equal(t, 0, coupon.UsedCount)
}

func TestPlaceOrder_StaleCouponRejectedAtPlacement(t *testing.T) {
	db := newTestDB(t)
	seedCheckoutCatalog(t, db)
	expired := time.Now().Add(-24 * time.Hour)
	require.NoError(t, db.Create(&model.Coupon{
		Code:           "OLD",
		DiscountType:   model.DiscountPercentage,
		Value:          50,
		ExpirationDate: &expired,
	}).Error)

	_, err := PlaceOrder(db, 42, PlaceOrderInput{
		Items:      []CartItemInput{{ProductID: 1, Quantity: 1}},
		CouponCode: "OLD",
	})
	require.ErrorIs(t, err, ErrCouponRejected)

	assert.Zero(t, countRows(t, db, &model.Order{}))
	assert.Equal(t, 10, productStock(t, db, 1))
}

func TestPlaceOrder_UnknownCouponRejected(t *testing.T) {
	db := newTestDB(t)
	seedCheckoutCatalog(t, db)

	_, err := PlaceOrder(db, 42, PlaceOrderInput{
		Items:      []CartItemInput{{ProductID: 1, Quantity: 1}},
		CouponCode: "NOPE",
	})
	require.ErrorIs(t, err, ErrCouponRejected)
	assert.Zero(t, countRows(t, db, &model.Order{}))
}

func TestPlaceOrder_MissingProductAborts(t *testing.T) {
	db := newTestDB(t)
	seedCheckoutCatalog(t, db)

	_, err := PlaceOrder(db, 42, PlaceOrderInput{
		Items: []CartItemInput{
			{ProductID: 1, Quantity: 1},
			{ProductID: 99, Quantity: 1},
		},
	})
	require.ErrorIs(t, err, ErrProductNotFound)

	assert.Zero(t, countRows(t, db, &model.Order{}))
	assert.Equal(t, 10, productStock(t, db, 1))
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	db := newTestDB(t)

	_, err := PlaceOrder(db, 42, PlaceOrderInput{})
	require.ErrorIs(t, err, ErrEmptyCart)
}
