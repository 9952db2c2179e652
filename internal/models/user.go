package models

import (
	"time"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether r is one of the enumerated roles.
func ValidRole(r Role) bool {
	return r == RoleStudent || r == RoleTeacher || r == RoleAdmin
}

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"default:''" json:"-"` // empty until email is verified
	Role     Role   `gorm:"size:20;not null" json:"role"`

	// Email verification pair. Both null once the account is verified.
	EmailToken       *string    `gorm:"index" json:"-"`
	EmailTokenExpiry *time.Time `json:"-"`

	// Password reset pair, independent of the verification pair.
	ResetPasswordToken  *string    `gorm:"index" json:"-"`
	ResetPasswordExpiry *time.Time `json:"-"`

	// Single active session: at most one refresh token per account.
	RefreshToken *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Verified reports whether the account has completed email verification.
func (u *User) Verified() bool {
	return u.EmailToken == nil && u.EmailTokenExpiry == nil
}
