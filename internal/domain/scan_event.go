package domain

import "time"

// ScanEvent is an immutable record of one resolved scan. Latitude and
// longitude arrive through a later, separate call and stay nil until
// then.
type ScanEvent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AssignmentID uint      `gorm:"index;not null" json:"assignment_id"`
	IP           string    `gorm:"size:64" json:"ip"`
	UserAgent    string    `gorm:"size:512" json:"user_agent"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}
