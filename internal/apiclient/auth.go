package apiclient

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/swiftapp/staff-service/internal/api/dto"
	"github.com/swiftapp/staff-service/internal/session"
)

// ErrNotLoggedIn is returned when an operation needs a stored refresh token.
var ErrNotLoggedIn = errors.New("not logged in")

// Login authenticates and stores the token, refresh token and user id.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := c.Do(ctx, http.MethodPost, "api/auth/login", nil, dto.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	if err := c.store(ctx, resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh swaps the stored refresh token for a new pair.
func (c *Client) Refresh(ctx context.Context) (*dto.AuthResponse, error) {
	refresh, err := c.session.Get(ctx, session.KeyRefreshToken)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}
	var resp dto.AuthResponse
	if err := c.Do(ctx, http.MethodPost, "api/auth/refresh", nil, dto.RefreshRequest{RefreshToken: refresh}, &resp); err != nil {
		return nil, err
	}
	if err := c.store(ctx, resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout revokes the refresh token on the server when possible and always clears local tokens.
func (c *Client) Logout(ctx context.Context) error {
	refresh, err := c.session.Get(ctx, session.KeyRefreshToken)
	if err == nil && refresh != "" {
		if err := c.Do(ctx, http.MethodPost, "api/auth/logout", nil, dto.RefreshRequest{RefreshToken: refresh}, nil); err != nil {
			c.logger.Debug("server logout failed", zap.Error(err))
		}
	}
	return session.ClearTokens(ctx, c.session)
}

func (c *Client) store(ctx context.Context, resp dto.AuthResponse) error {
	return session.SaveTokens(ctx, c.session, session.Tokens{
		AuthToken:    resp.Token,
		RefreshToken: resp.RefreshToken,
		UserID:       resp.UserID,
	})
}
