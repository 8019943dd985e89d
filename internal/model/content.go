package model

import (
	"time"

	"gorm.io/gorm"
)

// BlogPost is an article shown on the storefront blog
type BlogPost struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"type:varchar(255);not null"`
	Slug        string         `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Content     string         `json:"content" gorm:"type:text;not null"`
	Excerpt     *string        `json:"excerpt,omitempty" gorm:"type:text"`
	Thumbnail   *string        `json:"thumbnail,omitempty" gorm:"type:varchar(255)"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	AuthorID    uint           `json:"author_id" gorm:"index;not null"`
	Author      *User          `json:"author,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// Slider is a hero banner on the storefront home page
type Slider struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"type:varchar(255);not null"`
	Subtitle     *string   `json:"subtitle,omitempty" gorm:"type:varchar(255)"`
	Image        string    `json:"image" gorm:"type:varchar(255);not null"`
	Link         *string   `json:"link,omitempty" gorm:"type:varchar(255)"`
	DisplayOrder int       `json:"order" gorm:"column:display_order;default:0"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Setting is the single row of site-wide settings, upserted by the admin
type Setting struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	StoreName      string    `json:"store_name" gorm:"type:varchar(255)"`
	ContactEmail   string    `json:"contact_email" gorm:"type:varchar(100)"`
	ContactPhone   string    `json:"contact_phone" gorm:"type:varchar(30)"`
	Address        string    `json:"address" gorm:"type:text"`
	InstagramURL   string    `json:"instagram_url" gorm:"type:varchar(255)"`
	FacebookURL    string    `json:"facebook_url" gorm:"type:varchar(255)"`
	WhatsappNumber string    `json:"whatsapp_number" gorm:"type:varchar(30)"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ContactMessage is a message submitted through the contact form
type ContactMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"type:varchar(100);not null"`
	Phone     *string   `json:"phone,omitempty" gorm:"type:varchar(30)"`
	Subject   string    `json:"subject" gorm:"type:varchar(255)"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}
