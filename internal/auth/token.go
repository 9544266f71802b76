package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/swiftapp/staff-service/internal/domain"
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret     []byte
	ttl        time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes, refreshTTLHours int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	if refreshTTLHours <= 0 {
		refreshTTLHours = 24 * 30
	}
	return &TokenManager{
		secret:     []byte(secret),
		ttl:        time.Duration(ttlMinutes) * time.Minute,
		refreshTTL: time.Duration(refreshTTLHours) * time.Hour,
		now:        time.Now,
	}
}

// Claims describes JWT payload.
type Claims struct {
	UserID string           `json:"uid"`
	Kind   domain.TokenKind `json:"kind"`
	Role   domain.UserRole  `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// IssuePair signs an access token and a refresh token for the user.
func (tm *TokenManager) IssuePair(userID string, role domain.UserRole) (domain.TokenPair, error) {
	access, exp, err := tm.sign(userID, role, domain.TokenKindAccess, tm.ttl)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, _, err := tm.sign(userID, role, domain.TokenKindRefresh, tm.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    exp,
	}, nil
}

func (tm *TokenManager) sign(userID string, role domain.UserRole, kind domain.TokenKind, ttl time.Duration) (string, time.Time, error) {
	now := tm.now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		UserID: userID,
		Kind:   kind,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates a token of the expected kind and returns its claims.
func (tm *TokenManager) ParseToken(tokenStr string, kind domain.TokenKind) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Kind != kind {
		return nil, errors.New("unexpected token kind")
	}
	return claims, nil
}

// RefreshTTL is the lifetime of refresh tokens.
func (tm *TokenManager) RefreshTTL() time.Duration {
	return tm.refreshTTL
}
