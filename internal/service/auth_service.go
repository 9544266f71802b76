package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/swiftapp/staff-service/internal/auth"
	"github.com/swiftapp/staff-service/internal/config"
	"github.com/swiftapp/staff-service/internal/domain"
	"github.com/swiftapp/staff-service/internal/repository"
	apperrors "github.com/swiftapp/staff-service/pkg/util/errorutil"
)

// AuthService coordinates login, token refresh and logout.
type AuthService struct {
	users      repository.UserRepository
	revoked    auth.RevocationStore
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	Revocations auth.RevocationStore
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	revoked := deps.Revocations
	if revoked == nil {
		revoked = auth.NewMemoryRevocationStore()
	}
	return &AuthService{
		users:      deps.UserRepo,
		revoked:    revoked,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes, cfg.RefreshTokenTTLHours),
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// Login authenticates by email and password and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.TokenPair{}, apperrors.NewValidationError("email and password are required", nil)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, domain.TokenPair{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, domain.TokenPair{}, apperrors.MapError(err)
	}
	if !auth.PasswordMatches(user.PasswordHash, password) {
		return nil, domain.TokenPair{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if !user.Active {
		return nil, domain.TokenPair{}, apperrors.NewForbidden("account disabled")
	}
	pair, err := s.tokenMgr.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, domain.TokenPair{}, apperrors.NewInternalError(err)
	}
	now := time.Now()
	if err := s.users.RecordLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("record login", zap.String("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLoginAt = &now
	}
	return user, pair, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.tokenMgr.ParseToken(refreshToken, domain.TokenKindRefresh)
	if err != nil {
		return domain.TokenPair{}, apperrors.NewUnauthorized("invalid refresh token")
	}
	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return domain.TokenPair{}, apperrors.NewInternalError(err)
	}
	if revoked {
		return domain.TokenPair{}, apperrors.NewUnauthorized("refresh token revoked")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return domain.TokenPair{}, apperrors.NewUnauthorized("user not found")
		}
		return domain.TokenPair{}, apperrors.MapError(err)
	}
	if !user.Active {
		return domain.TokenPair{}, apperrors.NewForbidden("account disabled")
	}

	if err := s.revoke(ctx, claims); err != nil {
		return domain.TokenPair{}, apperrors.NewInternalError(err)
	}
	pair, err := s.tokenMgr.IssuePair(user.ID, user.Role)
	if err != nil {
		return domain.TokenPair{}, apperrors.NewInternalError(err)
	}
	return pair, nil
}

// Logout revokes a refresh token. Unparseable tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.tokenMgr.ParseToken(refreshToken, domain.TokenKindRefresh)
	if err != nil {
		s.logger.Debug("logout with invalid refresh token", zap.Error(err))
		return nil
	}
	if err := s.revoke(ctx, claims); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// BootstrapAdmin creates the configured admin account if it does not exist yet.
func (s *AuthService) BootstrapAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !apperrors.IsNotFound(err) {
		return err
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	user := &domain.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.UserRoleAdmin,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}
	s.logger.Info("bootstrap admin created", zap.String("user_id", user.ID), zap.String("email", email))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) revoke(ctx context.Context, claims *auth.Claims) error {
	ttl := s.tokenMgr.RefreshTTL()
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return s.revoked.Revoke(ctx, claims.ID, ttl)
}
