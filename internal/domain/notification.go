package domain

import "time"

type NotificationType string

const (
	NotificationTypeScan           NotificationType = "scan"
	NotificationTypeOrder          NotificationType = "order"
	NotificationTypeAccount        NotificationType = "account"
	NotificationTypePasswordChange NotificationType = "password_change"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"index;not null" json:"user_id"`
	Type      NotificationType `gorm:"size:32;not null" json:"type"`
	Title     string           `gorm:"size:256;not null" json:"title"`
	Message   string           `gorm:"size:1024" json:"message"`
	Read      bool             `gorm:"not null;default:false;index" json:"read"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
