package domain

import "time"

type TattooStatus string

const (
	TattooStatusNew      TattooStatus = "new"
	TattooStatusActive   TattooStatus = "active"
	TattooStatusInactive TattooStatus = "inactive"
)

// TattooInstance is one issued QR code. Status only ever moves
// new -> active -> inactive; an inactive instance cannot be reactivated.
type TattooInstance struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Code        string       `gorm:"size:64;uniqueIndex;not null" json:"code"`
	Status      TattooStatus `gorm:"size:16;not null;default:new;index" json:"status"`
	ActivatedAt *time.Time   `json:"activated_at,omitempty"`
	ExpiresAt   *time.Time   `gorm:"index" json:"expires_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
