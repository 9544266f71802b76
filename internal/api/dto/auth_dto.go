package dto

import "time"

// LoginRequest payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest payload for POST /api/auth/refresh and /api/auth/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token        string        `json:"token"`
	RefreshToken string        `json:"refreshToken"`
	UserID       string        `json:"userId"`
	ExpiresAt    time.Time     `json:"expiresAt"`
	User         *UserResponse `json:"user,omitempty"`
}
