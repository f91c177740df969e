package domain

import "time"

type ShippingMethod struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Name                 string    `gorm:"size:256;not null" json:"name"`
	PriceCents           int64     `gorm:"not null" json:"price_cents"`
	StripeShippingRateID string    `gorm:"size:128" json:"-"`
	Active               bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type ShippingAddress struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	FullName   string    `gorm:"size:256;not null" json:"full_name"`
	Line1      string    `gorm:"size:256;not null" json:"line1"`
	Line2      string    `gorm:"size:256" json:"line2"`
	City       string    `gorm:"size:128;not null" json:"city"`
	PostalCode string    `gorm:"size:32;not null" json:"postal_code"`
	Country    string    `gorm:"size:2;not null;default:PL" json:"country"`
	Phone      string    `gorm:"size:32" json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
