package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftapp/staff-service/internal/auth"
	"github.com/swiftapp/staff-service/internal/config"
	"github.com/swiftapp/staff-service/internal/domain"
	"github.com/swiftapp/staff-service/internal/repository"
)

func newTestAuthService(t *testing.T) (*AuthService, repository.UserRepository) {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	svc := NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		RefreshTokenTTLHours:  1,
		BcryptCost:            4,
	}, AuthDependencies{UserRepo: users, Revocations: auth.NewMemoryRevocationStore()})
	require.NoError(t, svc.BootstrapAdmin(context.Background(), "admin@swiftapp.com.au", "password1"))
	return svc, users
}

func TestLoginAndRefresh(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestAuthService(t)

	user, pair, err := svc.Login(ctx, "admin@swiftapp.com.au", "password1")
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleAdmin, user.Role)

	stored, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
	assert.Equal(t, user.ID, pair.UserID)
	assert.NotEmpty(t, pair.AccessToken)

	claims, err := svc.TokenManager().ParseToken(pair.AccessToken, domain.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))

	_, err = svc.Refresh(ctx, next.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestAuthService(t)

	_, _, err := svc.Login(ctx, "admin@swiftapp.com.au", "wrong")
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))

	_, _, err = svc.Login(ctx, "ghost@swiftapp.com.au", "password1")
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))

	_, _, err = svc.Login(ctx, "", "")
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))

	admin, err := users.GetByEmail(ctx, "admin@swiftapp.com.au")
	require.NoError(t, err)
	admin.Active = false
	require.NoError(t, users.Update(ctx, admin))
	_, _, err = svc.Login(ctx, "admin@swiftapp.com.au", "password1")
	assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	_, pair, err := svc.Login(ctx, "admin@swiftapp.com.au", "password1")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))
	require.NoError(t, svc.Logout(ctx, "garbage"))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestBootstrapAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestAuthService(t)
	require.NoError(t, svc.BootstrapAdmin(ctx, "admin@swiftapp.com.au", "other"))

	_, _, err := svc.Login(ctx, "admin@swiftapp.com.au", "password1")
	require.NoError(t, err)
	_, err = users.GetByEmail(ctx, "admin@swiftapp.com.au")
	require.NoError(t, err)
}
