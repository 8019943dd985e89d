package model

import (
	"time"
)

// Payment states recorded on an order. No gateway integration; the value is
// a caller-supplied hint defaulting to PENDING.
const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
)

// Order is an immutable record of a committed purchase. TotalAmount and the
// address snapshots are fixed at creation; only Status changes afterwards.
type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	UserID          uint        `json:"user_id" gorm:"index;not null"`
	TotalAmount     float64     `json:"total_amount" gorm:"not null"`
	Status          string      `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	PaymentStatus   string      `json:"payment_status" gorm:"type:varchar(20);default:'PENDING'"`
	ShippingAddress string      `json:"shipping_address" gorm:"type:text"`
	BillingAddress  string      `json:"billing_address" gorm:"type:text"`
	CouponCode      *string     `json:"coupon_code,omitempty" gorm:"type:varchar(50)"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem captures one cart line at purchase time. Price is a point-in-time
// snapshot and must never be recomputed from the current product price.
type OrderItem struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	OrderID   uint     `json:"order_id" gorm:"index;not null"`
	ProductID uint     `json:"product_id" gorm:"index;not null"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity" gorm:"not null"`
	Price     float64  `json:"price" gorm:"not null"`
	Variant   *string  `json:"variant,omitempty" gorm:"type:text"`
}
