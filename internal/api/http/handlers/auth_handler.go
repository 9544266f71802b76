package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/swiftapp/staff-service/internal/api/dto"
	"github.com/swiftapp/staff-service/internal/domain"
	"github.com/swiftapp/staff-service/internal/service"
	apperrors "github.com/swiftapp/staff-service/pkg/util/errorutil"
)

// AuthHandler exposes login, refresh and logout.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, pair, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	resp := authResponse(pair)
	resp.User = &dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, Role: string(user.Role)}
	return c.JSON(dto.OK(resp))
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return apperrors.NewValidationError("refreshToken required", nil)
	}
	pair, err := h.service.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(authResponse(pair)))
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.Logout(c.UserContext(), req.RefreshToken); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(dto.OK(fiber.Map{"status": "logged_out"}))
}

func authResponse(pair domain.TokenPair) dto.AuthResponse {
	return dto.AuthResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		UserID:       pair.UserID,
		ExpiresAt:    pair.ExpiresAt,
	}
}
