package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cybervibe/helpdesk/internal/domain"
)

const ticketColumns = `id, sl_no, request_id, created_date, start_time, end_time,
               user_name, process, reported_by, priority, technician_name,
               issue_category, sub_category, effort_time, request_status, remarks,
               created_by, created_at, updated_at`

// TicketRepository encapsulates ticket persistence. Listing is always ordered
// by sl_no descending.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListAll(ctx context.Context) ([]domain.Ticket, error)
	ListByCreator(ctx context.Context, userID string) ([]domain.Ticket, error)
	UpdatePartial(ctx context.Context, id string, patch domain.TicketPatch) error
	Delete(ctx context.Context, id string) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (request_id, created_date, start_time, end_time, user_name,
            process, reported_by, priority, technician_name, issue_category,
            sub_category, effort_time, request_status, remarks, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, sl_no, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.RequestID,
		ticket.CreatedDate,
		ticket.StartTime,
		ticket.EndTime,
		ticket.UserName,
		ticket.Process,
		ticket.ReportedBy,
		ticket.Priority,
		ticket.TechnicianName,
		ticket.IssueCategory,
		ticket.SubCategory,
		ticket.EffortTime,
		ticket.RequestStatus,
		ticket.Remarks,
		ticket.CreatedBy,
	).Scan(&ticket.ID, &ticket.SlNo, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(ticketScanTargets(&ticket)...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets ORDER BY sl_no DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListByCreator(ctx context.Context, userID string) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE created_by=$1 ORDER BY sl_no DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// UpdatePartial applies only the fields set on the patch in a single UPDATE.
// Identity columns and created_by are never part of the SET list.
func (r *ticketRepository) UpdatePartial(ctx context.Context, id string, patch domain.TicketPatch) error {
	sets := []string{}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if patch.StartTime != nil {
		addSet("start_time", nullableClock(patch.StartTime))
	}
	if patch.EndTime != nil {
		addSet("end_time", nullableClock(patch.EndTime))
	}
	if patch.UserName != nil {
		addSet("user_name", *patch.UserName)
	}
	if patch.Process != nil {
		addSet("process", *patch.Process)
	}
	if patch.ReportedBy != nil {
		addSet("reported_by", *patch.ReportedBy)
	}
	if patch.Priority != nil {
		addSet("priority", *patch.Priority)
	}
	if patch.TechnicianName != nil {
		addSet("technician_name", *patch.TechnicianName)
	}
	if patch.IssueCategory != nil {
		addSet("issue_category", *patch.IssueCategory)
	}
	if patch.SubCategory != nil {
		addSet("sub_category", *patch.SubCategory)
	}
	if patch.EffortTime != nil {
		addSet("effort_time", *patch.EffortTime)
	}
	if patch.RequestStatus != nil {
		addSet("request_status", *patch.RequestStatus)
	}
	if patch.Remarks != nil {
		addSet("remarks", *patch.Remarks)
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE tickets SET %s WHERE id=$%d", strings.Join(sets, ", "), len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// nullableClock maps an empty clock-time string to NULL.
func nullableClock(val *string) *string {
	if val == nil || *val == "" {
		return nil
	}
	return val
}

func ticketScanTargets(ticket *domain.Ticket) []any {
	return []any{
		&ticket.ID,
		&ticket.SlNo,
		&ticket.RequestID,
		&ticket.CreatedDate,
		&ticket.StartTime,
		&ticket.EndTime,
		&ticket.UserName,
		&ticket.Process,
		&ticket.ReportedBy,
		&ticket.Priority,
		&ticket.TechnicianName,
		&ticket.IssueCategory,
		&ticket.SubCategory,
		&ticket.EffortTime,
		&ticket.RequestStatus,
		&ticket.Remarks,
		&ticket.CreatedBy,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	}
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(ticketScanTargets(&ticket)...); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
