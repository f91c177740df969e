package domain

import "time"

type AccountStatus string

const (
	AccountStatusFree   AccountStatus = "free"
	AccountStatusActive AccountStatus = "active"
)

type User struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	Email            string        `gorm:"size:320;uniqueIndex;not null" json:"email"`
	FullName         string        `gorm:"size:256" json:"full_name"`
	Phone            string        `gorm:"size:32" json:"phone"`
	StripeCustomerID string        `gorm:"size:128;index" json:"-"`
	AccountStatus    AccountStatus `gorm:"size:32;not null;default:free" json:"account_status"`
	SubscriptionEnds *time.Time    `json:"subscription_ends,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
