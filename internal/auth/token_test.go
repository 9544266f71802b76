package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/swiftapp/staff-service/internal/domain"
)

func TestIssueAndParsePair(t *testing.T) {
	tm := NewTokenManager("secret", 15, 24)

	pair, err := tm.IssuePair("user-1", domain.UserRoleManager)
	require.NoError(t, err)
	assert.Equal(t, "user-1", pair.UserID)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := tm.ParseToken(pair.AccessToken, domain.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.UserRoleManager, claims.Role)

	refresh, err := tm.ParseToken(pair.RefreshToken, domain.TokenKindRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, refresh.ID)
}

func TestParseTokenRejectsWrongKind(t *testing.T) {
	tm := NewTokenManager("secret", 15, 24)
	pair, err := tm.IssuePair("user-1", domain.UserRoleCrew)
	require.NoError(t, err)

	_, err = tm.ParseToken(pair.RefreshToken, domain.TokenKindAccess)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpiredAndForeignTokens(t *testing.T) {
	tm := NewTokenManager("secret", 1, 1)
	pair, err := tm.IssuePair("user-1", domain.UserRoleCrew)
	require.NoError(t, err)

	tm.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = tm.ParseToken(pair.AccessToken, domain.TokenKindAccess)
	assert.Error(t, err)

	other := NewTokenManager("other-secret", 1, 1)
	_, err = other.ParseToken(pair.RefreshToken, domain.TokenKindRefresh)
	assert.Error(t, err)
}

func TestHashPasswordClampsCost(t *testing.T) {
	hash, err := HashPassword("hunter22", 1)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
	assert.True(t, PasswordMatches(hash, "hunter22"))
	assert.False(t, PasswordMatches(hash, "hunter23"))
}

func TestHashPasswordRejectsShortPasswords(t *testing.T) {
	_, err := HashPassword("short", 4)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestBearerToken(t *testing.T) {
	token, err := bearerToken("bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	for _, header := range []string{"", "Bearer", "Bearer  ", "Basic abc"} {
		_, err := bearerToken(header)
		assert.Error(t, err, header)
	}
}

func TestMemoryRevocationStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()

	revoked, err := store.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti", time.Hour))
	revoked, err = store.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, store.Revoke(ctx, "short", -time.Second))
	revoked, err = store.IsRevoked(ctx, "short")
	require.NoError(t, err)
	assert.False(t, revoked)
}
