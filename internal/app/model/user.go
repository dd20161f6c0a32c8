package model

import (
	"strings"
	"time"
)

// RoleAdmin is the only role with elevated rights. Roles are free-form
// strings, uppercased at creation.
const RoleAdmin = "ADMIN"

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	Role      string    `gorm:"type:varchar(20)" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Matches []Match `gorm:"foreignKey:MatchedByID" json:"matches,omitempty"` // matches this user proposed
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user carries the admin role, matched
// case-insensitively.
func (u *User) IsAdmin() bool {
	return strings.EqualFold(u.Role, RoleAdmin)
}
