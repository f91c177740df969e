package domain

import "time"

type Product struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Name      string           `gorm:"size:256;not null" json:"name"`
	Active    bool             `gorm:"not null;default:true" json:"active"`
	Variants  []ProductVariant `json:"variants,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type ProductVariant struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProductID     uint      `gorm:"index;not null" json:"product_id"`
	Name          string    `gorm:"size:256;not null" json:"name"`
	PriceCents    int64     `gorm:"not null" json:"price_cents"`
	StripePriceID string    `gorm:"size:128;uniqueIndex;not null" json:"-"`
	Active        bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
