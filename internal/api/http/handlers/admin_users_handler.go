package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cybervibe/helpdesk/internal/api/dto"
	"github.com/cybervibe/helpdesk/internal/service"
	apperrors "github.com/cybervibe/helpdesk/pkg/util"
)

// AdminUsersHandler exposes the user management panel endpoints. The router
// gates the whole group on the admin role.
type AdminUsersHandler struct {
	admin *service.AdminService
}

// NewAdminUsersHandler constructs handler.
func NewAdminUsersHandler(adminService *service.AdminService) *AdminUsersHandler {
	return &AdminUsersHandler{admin: adminService}
}

// ListUsers GET /admin/users.
func (h *AdminUsersHandler) ListUsers(c *fiber.Ctx) error {
	accounts, err := h.admin.ListUsers(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, dto.AccountResponse{
			UserID:   account.UserID,
			Username: account.Username,
			FullName: account.FullName,
			Role:     account.Role,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateUser POST /admin/users.
func (h *AdminUsersHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, err := h.admin.CreateUser(c.Context(), service.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.AccountResponse{
			UserID:   account.UserID,
			Username: account.Username,
			FullName: account.FullName,
			Role:     account.Role,
		},
	})
}

// DeleteUser DELETE /admin/users/:id.
func (h *AdminUsersHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.admin.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}
