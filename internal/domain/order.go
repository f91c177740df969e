package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

// Order rows are keyed one-to-one to a Stripe checkout session. The
// unique index on CheckoutSessionID is the tie-breaker that prevents
// the webhook and poll paths from ever creating two rows for the same
// purchase.
type Order struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	UserID            uint        `gorm:"index;not null" json:"user_id"`
	OrderNumber       string      `gorm:"size:64;uniqueIndex;not null" json:"order_number"`
	Status            OrderStatus `gorm:"size:16;not null;default:PENDING;index" json:"status"`
	TotalCents        int64       `gorm:"not null" json:"total_cents"`
	Currency          string      `gorm:"size:8;not null;default:pln" json:"currency"`
	CheckoutSessionID string      `gorm:"size:256;uniqueIndex;not null" json:"-"`
	PaymentIntentID   *string     `gorm:"size:256" json:"-"`
	StripeCustomerID  string      `gorm:"size:128" json:"-"`
	ShippingAddressID *uint       `json:"shipping_address_id,omitempty"`
	Items             []OrderItem `json:"items,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// OrderItem snapshots quantity and unit price at time of purchase; it
// never references the live product price.
type OrderItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrderID        uint      `gorm:"index;not null" json:"order_id"`
	VariantID      uint      `gorm:"index" json:"variant_id"`
	Description    string    `gorm:"size:512" json:"description"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	UnitPriceCents int64     `gorm:"not null" json:"unit_price_cents"`
	CreatedAt      time.Time `json:"created_at"`
}
