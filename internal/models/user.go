package models

import "time"

// UserRole enumerates account roles.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleStudent UserRole = "student"
)

// Valid reports whether the role is a known value.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}

// User is an authentication account. Student accounts carry a link to
// their student profile document.
type User struct {
	ID             string    `bson:"_id" json:"id"`
	Username       string    `bson:"username" json:"username"`
	PasswordHash   string    `bson:"passwordHash" json:"-"`
	Role           UserRole  `bson:"role" json:"role"`
	StudentProfile *string   `bson:"studentProfile,omitempty" json:"studentProfile,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RegisterUserRequest creates a new account.
type RegisterUserRequest struct {
	Username       string   `json:"username" validate:"required,min=3,max=64"`
	Password       string   `json:"password" validate:"required,min=6,max=128"`
	Role           UserRole `json:"role" validate:"required,oneof=admin student"`
	StudentProfile *string  `json:"studentProfile,omitempty" validate:"omitempty,uuid4"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=128"`
}
