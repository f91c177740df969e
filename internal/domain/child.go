package domain

import "time"

type Child struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"index;not null" json:"user_id"`
	Name          string     `gorm:"size:256;not null" json:"name"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	AvatarKey     string     `gorm:"size:512" json:"-"`
	ImportantInfo string     `gorm:"size:2048" json:"important_info"`
	MedicalInfo   string     `gorm:"size:2048" json:"medical_info"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
