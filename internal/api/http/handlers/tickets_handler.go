package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cybervibe/helpdesk/internal/api/dto"
	"github.com/cybervibe/helpdesk/internal/auth"
	"github.com/cybervibe/helpdesk/internal/domain"
	"github.com/cybervibe/helpdesk/internal/export"
	"github.com/cybervibe/helpdesk/internal/service"
	apperrors "github.com/cybervibe/helpdesk/pkg/util"
)

const exportFilenamePrefix = "IT_Tickets"

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// ListTickets GET /tickets. Admins see every ticket; everyone else only
// their own.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tickets := h.service.List(c.Context(), principal.UserID, principal.IsAdmin())
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TicketCreateInput{
		UserName:       req.UserName,
		Process:        req.Process,
		ReportedBy:     req.ReportedBy,
		Priority:       req.Priority,
		TechnicianName: req.TechnicianName,
		IssueCategory:  req.IssueCategory,
		SubCategory:    req.SubCategory,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Remarks:        req.Remarks,
	}
	if input.TechnicianName == "" {
		input.TechnicianName = principal.Username
	}

	ticket, err := h.service.Create(c.Context(), principal.UserID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateTicket PATCH /tickets/:id. Admin only; applies only the supplied
// fields and reports success as a flag so a failure never masquerades as a
// committed change.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Priority != nil && !domain.ValidPriority(*req.Priority) {
		return apperrors.NewValidationError("priority must be Low, Medium or High", nil)
	}

	patch := domain.TicketPatch{
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		UserName:       req.UserName,
		Process:        req.Process,
		ReportedBy:     req.ReportedBy,
		Priority:       req.Priority,
		TechnicianName: req.TechnicianName,
		IssueCategory:  req.IssueCategory,
		SubCategory:    req.SubCategory,
		EffortTime:     req.EffortTime,
		RequestStatus:  req.RequestStatus,
		Remarks:        req.Remarks,
	}
	if patch.Empty() {
		return apperrors.NewValidationError("no fields to update", nil)
	}

	ok := h.service.Update(c.Context(), c.Params("id"), patch)
	return c.JSON(fiber.Map{"data": dto.MutationResult{Success: ok}})
}

// DeleteTicket DELETE /tickets/:id. Admin only. The pre-deletion snapshot is
// read first so the mirror forward still has the full record.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	id := c.Params("id")
	ticket, err := h.service.Get(c.Context(), id)
	if err != nil {
		return apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	ok := h.service.Delete(c.Context(), id, *ticket)
	return c.JSON(fiber.Map{"data": dto.MutationResult{Success: ok}})
}

// ExportTickets GET /tickets/export streams the caller's visible set as CSV.
func (h *TicketsHandler) ExportTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tickets := h.service.List(c.Context(), principal.UserID, principal.IsAdmin())

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, tickets); err != nil {
		return apperrors.NewInternalError(err)
	}

	filename := export.Filename(exportFilenamePrefix, time.Now())
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:             ticket.ID,
		SlNo:           ticket.SlNo,
		RequestID:      ticket.RequestID,
		CreatedDate:    ticket.CreatedDate,
		StartTime:      ticket.StartTime,
		EndTime:        ticket.EndTime,
		UserName:       ticket.UserName,
		Process:        ticket.Process,
		ReportedBy:     ticket.ReportedBy,
		Priority:       ticket.Priority,
		TechnicianName: ticket.TechnicianName,
		IssueCategory:  ticket.IssueCategory,
		SubCategory:    ticket.SubCategory,
		EffortTime:     ticket.EffortTime,
		RequestStatus:  ticket.RequestStatus,
		Remarks:        ticket.Remarks,
		CreatedBy:      ticket.CreatedBy,
		CreatedAt:      ticket.CreatedAt,
		UpdatedAt:      ticket.UpdatedAt,
	}
}
