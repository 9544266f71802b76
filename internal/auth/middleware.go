package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/swiftapp/staff-service/internal/domain"
	"github.com/swiftapp/staff-service/internal/repository"
	apperrors "github.com/swiftapp/staff-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal is the caller behind a valid access token.
type Principal struct {
	User *domain.User
	Role domain.UserRole
}

// AuthMiddleware turns a bearer access token into a Principal. The user is
// reloaded on every request so deactivation takes effect before the token expires.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs the bearer token middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Handle rejects the request with 401 unless it carries a usable access token.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	claims, err := m.tokens.ParseToken(token, domain.TokenKindAccess)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	user, err := m.users.GetByID(c.UserContext(), claims.UserID)
	switch {
	case apperrors.IsNotFound(err):
		return apperrors.NewUnauthorized("user not found")
	case err != nil:
		return apperrors.MapError(err)
	case !user.Active:
		return apperrors.NewUnauthorized("user inactive")
	}

	c.Locals(principalKey, &Principal{User: user, Role: user.Role})
	return c.Next()
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.NewUnauthorized("missing authorization header")
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return token, nil
}

// PrincipalFromContext returns the Principal stored by Handle.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	principal, ok := c.Locals(principalKey).(*Principal)
	return principal, ok && principal != nil
}
