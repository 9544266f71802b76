package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/swiftapp/staff-service/internal/domain"
	apperrors "github.com/swiftapp/staff-service/pkg/util/errorutil"
)

// RequireAnyRole admits any authenticated caller.
func RequireAnyRole() fiber.Handler {
	return requireRole(nil, "")
}

// RequireStaffManager admits callers allowed to change the roster.
func RequireStaffManager() fiber.Handler {
	return requireRole(domain.UserRole.CanManageStaff, "manager role required")
}

func requireRole(allow func(domain.UserRole) bool, denied string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if allow != nil && !allow(principal.Role) {
			return apperrors.NewForbidden(denied)
		}
		return c.Next()
	}
}
