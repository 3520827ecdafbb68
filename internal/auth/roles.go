package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cybervibe/helpdesk/internal/domain"
	apperrors "github.com/cybervibe/helpdesk/pkg/util"
)

// RequireAdmin gates administrative routes strictly on the admin role. An
// unresolved role is rejected like any non-admin.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin access required")
		}
		return c.Next()
	}
}
