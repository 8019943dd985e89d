package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Product represents an item in the catalog
type Product struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name" gorm:"type:varchar(255);not null"`
	Slug          string         `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Description   string         `json:"description" gorm:"type:text"`
	Price         float64        `json:"price" gorm:"not null"`
	DiscountPrice *float64       `json:"discount_price,omitempty"`
	Stock         int            `json:"stock" gorm:"default:0"`
	CategoryID    uint           `json:"category_id" gorm:"index;not null"`
	Category      *Category      `json:"category,omitempty"`
	BrandID       *uint          `json:"brand_id,omitempty" gorm:"index"`
	Brand         *Brand         `json:"brand,omitempty"`
	Images        string         `json:"images" gorm:"type:text"`
	YoutubeURL    *string        `json:"youtube_url,omitempty" gorm:"type:varchar(255)"`
	Features      *string        `json:"features,omitempty" gorm:"type:text"`
	IsFeatured    bool           `json:"is_featured" gorm:"default:false"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// EffectivePrice returns the discount price when one is set, the list
// price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// ImageList decodes the JSON-encoded image column into URL strings.
func (p Product) ImageList() []string {
	if p.Images == "" {
		return nil
	}
	var images []string
	if err := json.Unmarshal([]byte(p.Images), &images); err != nil {
		return nil
	}
	return images
}

// FirstImage returns the primary product image, or empty when none exist.
func (p Product) FirstImage() string {
	images := p.ImageList()
	if len(images) == 0 {
		return ""
	}
	return images[0]
}

// Category is a catalog category. Categories nest through ParentID, three
// levels deep in practice; the tree must stay acyclic.
type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	Slug      string         `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Image     *string        `json:"image,omitempty" gorm:"type:varchar(255)"`
	ParentID  *uint          `json:"parent_id,omitempty" gorm:"index"`
	Children  []Category     `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Brand is a product manufacturer
type Brand struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Slug      string         `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Image     *string        `json:"image,omitempty" gorm:"type:varchar(255)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Coupon discount types
const (
	DiscountPercentage = "PERCENTAGE"
	DiscountFixed      = "FIXED"
)

// Coupon is a named discount rule. UsedCount never exceeds UsageLimit when
// a limit is set, and is never decremented.
type Coupon struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Code           string     `json:"code" gorm:"type:varchar(50);uniqueIndex;not null"`
	DiscountType   string     `json:"discount_type" gorm:"type:varchar(20);not null"`
	Value          float64    `json:"value" gorm:"not null"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	UsageLimit     *int       `json:"usage_limit,omitempty"`
	UsedCount      int        `json:"used_count" gorm:"default:0"`
	MinOrderAmount *float64   `json:"min_order_amount,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
