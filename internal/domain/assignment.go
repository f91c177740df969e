package domain

import "time"

// Assignment links one guardian and one child to one activated tattoo
// instance. At most one active assignment may exist per instance; the
// unique index on TattooInstanceID enforces it because assignments are
// flipped inactive (and the instance retired) before a code could ever
// be reissued.
type Assignment struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"index;not null" json:"user_id"`
	ChildID          uint           `gorm:"index;not null" json:"child_id"`
	TattooInstanceID uint           `gorm:"uniqueIndex;not null" json:"tattoo_instance_id"`
	Active           bool           `gorm:"not null;default:true;index" json:"active"`
	User             User           `json:"-"`
	Child            Child          `json:"-"`
	TattooInstance   TattooInstance `json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
