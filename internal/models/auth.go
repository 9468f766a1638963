package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthUser is the user shape returned by auth endpoints.
type AuthUser struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Role           UserRole `json:"role"`
	StudentProfile *string  `json:"studentProfile,omitempty"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

// JWTClaims are the custom claims embedded in issued tokens.
type JWTClaims struct {
	UserID    string   `json:"uid"`
	Username  string   `json:"username"`
	Role      UserRole `json:"role"`
	StudentID *string  `json:"studentId,omitempty"`
	jwt.RegisteredClaims
}
