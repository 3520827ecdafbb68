package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cybervibe/helpdesk/internal/domain"
	"github.com/cybervibe/helpdesk/internal/events"
	"github.com/cybervibe/helpdesk/internal/observability"
	"github.com/cybervibe/helpdesk/internal/repository"
	apperrors "github.com/cybervibe/helpdesk/pkg/util"
)

// TicketService is the sole mutator and reader of ticket records. Every
// committed mutation publishes a TicketChanged event carrying the full
// snapshot; the relay picks it up from there and its outcome never feeds
// back into the caller-visible result.
type TicketService struct {
	tickets         repository.TicketRepository
	dispatcher      events.Dispatcher
	logger          *zap.Logger
	metrics         *observability.Metrics
	enforceTaxonomy bool
}

// TicketDependencies bundles requirements for the ticket service.
type TicketDependencies struct {
	TicketRepo      repository.TicketRepository
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
	Metrics         *observability.Metrics
	EnforceTaxonomy bool
}

// TicketCreateInput describes ticket creation payload. Identity fields are
// never client-supplied.
type TicketCreateInput struct {
	UserName       string
	Process        string
	ReportedBy     string
	Priority       domain.TicketPriority
	TechnicianName string
	IssueCategory  string
	SubCategory    string
	StartTime      *string
	EndTime        *string
	Remarks        string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:         deps.TicketRepo,
		dispatcher:      deps.Dispatcher,
		logger:          deps.Logger,
		metrics:         deps.Metrics,
		enforceTaxonomy: deps.EnforceTaxonomy,
	}
}

// List returns every ticket ordered by sequence number descending for
// admins, and only the caller's own tickets otherwise. Store failures are
// logged and surface as an empty slice, never as a crash.
func (s *TicketService) List(ctx context.Context, callerID string, isAdmin bool) []domain.Ticket {
	var (
		tickets []domain.Ticket
		err     error
	)
	if isAdmin {
		tickets, err = s.tickets.ListAll(ctx)
	} else {
		tickets, err = s.tickets.ListByCreator(ctx, callerID)
	}
	if err != nil {
		s.logger.Error("list tickets failed", zap.Bool("admin_scope", isAdmin), zap.Error(err))
		return []domain.Ticket{}
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets
}

// Get fetches a single ticket by primary key.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

// Create validates the input, assigns identity fields server-side and
// persists the record as Open with today's date.
func (s *TicketService) Create(ctx context.Context, callerID string, input TicketCreateInput) (*domain.Ticket, error) {
	if err := s.validateCreate(input); err != nil {
		return nil, err
	}

	now := time.Now()
	ticket := &domain.Ticket{
		RequestID:      domain.GenerateRequestID(now),
		CreatedDate:    now.Format("2006-01-02"),
		StartTime:      normalizeClock(input.StartTime),
		EndTime:        normalizeClock(input.EndTime),
		UserName:       strings.TrimSpace(input.UserName),
		Process:        strings.TrimSpace(input.Process),
		ReportedBy:     strings.TrimSpace(input.ReportedBy),
		Priority:       input.Priority,
		TechnicianName: strings.TrimSpace(input.TechnicianName),
		IssueCategory:  input.IssueCategory,
		SubCategory:    input.SubCategory,
		RequestStatus:  domain.TicketStatusOpen,
		Remarks:        strings.TrimSpace(input.Remarks),
		CreatedBy:      callerID,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		s.metrics.RecordTicketOp("create", false)
		s.logger.Error("create ticket failed", zap.Error(err))
		return nil, apperrors.NewStoreUnavailable(err)
	}

	s.metrics.RecordTicketOp("create", true)
	s.publishChange(ctx, events.ActionCreate, *ticket)
	return ticket, nil
}

// Update applies only the supplied fields. It reports success as a boolean:
// false covers both an unknown id and a store failure, with the cause
// logged. The update is a single statement, so it commits whole or not at
// all.
func (s *TicketService) Update(ctx context.Context, id string, patch domain.TicketPatch) bool {
	if err := s.tickets.UpdatePartial(ctx, id, patch); err != nil {
		s.metrics.RecordTicketOp("update", false)
		s.logger.Warn("update ticket failed", zap.String("ticket_id", id), zap.Error(err))
		return false
	}
	s.metrics.RecordTicketOp("update", true)

	// forward the full post-update record; a failed re-read only costs the
	// mirror this one event
	updated, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn("post-update read failed; skipping mirror forward",
			zap.String("ticket_id", id), zap.Error(err))
		return true
	}
	s.publishChange(ctx, events.ActionUpdate, *updated)
	return true
}

// Delete removes the record permanently. The caller supplies the
// pre-deletion snapshot, which rides the change event since the row no
// longer exists to re-read.
func (s *TicketService) Delete(ctx context.Context, id string, snapshot domain.Ticket) bool {
	if err := s.tickets.Delete(ctx, id); err != nil {
		s.metrics.RecordTicketOp("delete", false)
		s.logger.Warn("delete ticket failed", zap.String("ticket_id", id), zap.Error(err))
		return false
	}
	s.metrics.RecordTicketOp("delete", true)
	s.publishChange(ctx, events.ActionDelete, snapshot)
	return true
}

func (s *TicketService) validateCreate(input TicketCreateInput) error {
	details := map[string]any{}
	if strings.TrimSpace(input.UserName) == "" {
		details["user_name"] = "required"
	}
	if !domain.ValidPriority(input.Priority) {
		details["priority"] = "must be Low, Medium or High"
	}
	if input.IssueCategory == "" {
		details["issue_category"] = "required"
	} else if s.enforceTaxonomy && !domain.ValidCategory(input.IssueCategory, input.SubCategory) {
		details["issue_category"] = "not part of the category taxonomy"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid ticket", details)
	}
	return nil
}

func (s *TicketService) publishChange(ctx context.Context, action events.ChangeAction, snapshot domain.Ticket) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketChanged,
		Timestamp: time.Now(),
		Payload: events.TicketChangedPayload{
			Action:   action,
			Snapshot: snapshot,
		},
	})
}

func normalizeClock(val *string) *string {
	if val == nil || strings.TrimSpace(*val) == "" {
		return nil
	}
	return val
}
