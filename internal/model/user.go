package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a registered customer or admin account
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	Email     string         `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"type:varchar(255);not null"`
	Phone     *string        `json:"phone,omitempty" gorm:"type:varchar(30)"`
	Role      string         `json:"role" gorm:"type:varchar(20);default:'USER'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Address is a user-owned mailing address. Orders copy it by value at
// placement time; deleting an address never touches past orders.
type Address struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"type:varchar(100);not null"`
	AddressLine string    `json:"address_line" gorm:"type:text;not null"`
	City        string    `json:"city" gorm:"type:varchar(100);not null"`
	District    string    `json:"district" gorm:"type:varchar(100);not null"`
	ZipCode     string    `json:"zip_code" gorm:"type:varchar(20)"`
	Phone       string    `json:"phone" gorm:"type:varchar(30);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
