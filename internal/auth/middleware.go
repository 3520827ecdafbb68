package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/cybervibe/helpdesk/internal/domain"
	"github.com/cybervibe/helpdesk/internal/repository"
	apperrors "github.com/cybervibe/helpdesk/pkg/util"
)

const principalKey = "auth_principal"

// Principal is the resolved session context threaded through request
// handling: account identity, display profile and role, populated once per
// request.
type Principal struct {
	UserID   string
	Email    string
	Username string
	FullName string
	Role     domain.Role
}

// IsAdmin reports whether the caller holds the administrator role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == domain.RoleAdmin
}

// RoleResolver derives the caller's role from the role table.
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID string) domain.Role
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens   *TokenManager
	users    repository.UserRepository
	profiles repository.ProfileRepository
	resolver RoleResolver
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, profiles repository.ProfileRepository, resolver RoleResolver) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, profiles: profiles, resolver: resolver}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("account not found")
		}
		return apperrors.MapError(err)
	}

	principal := &Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   m.resolver.ResolveRole(c.Context(), user.ID),
	}
	if profile, err := m.profiles.GetByUserID(c.Context(), user.ID); err == nil {
		principal.Username = profile.Username
		principal.FullName = profile.FullName
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
