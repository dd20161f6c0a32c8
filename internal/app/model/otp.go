package model

import (
	"time"
)

// Otp is a pending second factor for a login session. Exactly one active
// row per session token; consumed by deletion, never updated in place.
type Otp struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	SessionToken string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	Email        string    `gorm:"size:255;not null" json:"email"`
	Code         string    `gorm:"size:6;not null" json:"-"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Otp) TableName() string {
	return "otps"
}
