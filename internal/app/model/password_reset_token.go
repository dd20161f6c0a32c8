package model

import (
	"time"
)

// PasswordResetToken authorizes exactly one password change for its user.
// "Used" is represented by deletion; a row is never updated.
type PasswordResetToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Token     string    `gorm:"size:255;not null;uniqueIndex" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// IsExpired reports whether the token is past its expiry at the given time.
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
