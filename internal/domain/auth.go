package domain

import "time"

// TokenKind differentiates access tokens from refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenPair is what a successful login or refresh hands back to the client.
type TokenPair struct {
	UserID       string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}
