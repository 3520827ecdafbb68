package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cybervibe/helpdesk/internal/api/dto"
	"github.com/cybervibe/helpdesk/internal/auth"
	"github.com/cybervibe/helpdesk/internal/service"
	apperrors "github.com/cybervibe/helpdesk/pkg/util"
)

// AuthHandler exposes login and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login. Accepts username or email.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Login == "" || req.Password == "" {
		return apperrors.NewValidationError("login and password required", nil)
	}

	session, token, exp, err := h.auth.Login(c.Context(), req.Login, req.Password)
	if err != nil {
		return apperrors.NewUnauthorized("invalid username or password")
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.SessionResponse{
				UserID:   session.UserID,
				Username: session.Username,
				FullName: session.FullName,
				Role:     session.Role,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{
		"data": dto.SessionResponse{
			UserID:   principal.UserID,
			Username: principal.Username,
			FullName: principal.FullName,
			Role:     principal.Role,
		},
	})
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.NewPassword == "" {
		return apperrors.NewValidationError("new_password required", nil)
	}
	if err := h.auth.ChangePassword(c.Context(), principal.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}
