package model

import (
	"time"

	"gorm.io/gorm"
)

// Product prices are integer minor currency units (cents); floating point
// never touches money anywhere in the system.
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	PriceCents  int64          `gorm:"not null" json:"price_cents"`
	ImageURL    string         `json:"image_url"`
	CategoryID  *uint          `gorm:"index" json:"category_id"` // nil = uncategorized
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
