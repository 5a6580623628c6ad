package model

import (
	"time"
)

// Profile holds the optional shipping and billing details a user fills in
// from the account page. At most one per user.
type Profile struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	UserID          uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	BirthDate       string    `json:"birth_date"` // YYYY-MM-DD, optional
	ShippingAddress string    `json:"shipping_address"`
	ShippingZip     string    `json:"shipping_zip"`
	BillingAddress  string    `json:"billing_address"`
	BillingZip      string    `json:"billing_zip"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
