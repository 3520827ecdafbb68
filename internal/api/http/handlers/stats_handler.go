package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cybervibe/helpdesk/internal/api/dto"
	"github.com/cybervibe/helpdesk/internal/auth"
	"github.com/cybervibe/helpdesk/internal/service"
	apperrors "github.com/cybervibe/helpdesk/pkg/util"
)

// StatsHandler serves dashboard aggregates.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: statsService}
}

// Dashboard GET /stats/dashboard. Aggregates respect the caller's
// visibility scope.
func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	stats := h.stats.Dashboard(c.Context(), principal.UserID, principal.IsAdmin())
	return c.JSON(fiber.Map{"data": dto.DashboardStatsResponse{
		Total:      stats.Total,
		Open:       stats.Open,
		Closed:     stats.Closed,
		ByPriority: stats.ByPriority,
		ByCategory: stats.ByCategory,
	}})
}
