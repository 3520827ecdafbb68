package dto

import (
	"time"

	"github.com/cybervibe/helpdesk/internal/domain"
)

// CreateTicketRequest payload. Identity fields are server-assigned and not
// accepted here.
type CreateTicketRequest struct {
	UserName       string                `json:"user_name"`
	Process        string                `json:"process"`
	ReportedBy     string                `json:"reported_by"`
	Priority       domain.TicketPriority `json:"priority"`
	TechnicianName string                `json:"technician_name"`
	IssueCategory  string                `json:"issue_category"`
	SubCategory    string                `json:"sub_category"`
	StartTime      *string               `json:"start_time"`
	EndTime        *string               `json:"end_time"`
	Remarks        string                `json:"remarks"`
}

// UpdateTicketRequest carries a partial update; absent fields stay untouched.
type UpdateTicketRequest struct {
	StartTime      *string                `json:"start_time"`
	EndTime        *string                `json:"end_time"`
	UserName       *string                `json:"user_name"`
	Process        *string                `json:"process"`
	ReportedBy     *string                `json:"reported_by"`
	Priority       *domain.TicketPriority `json:"priority"`
	TechnicianName *string                `json:"technician_name"`
	IssueCategory  *string                `json:"issue_category"`
	SubCategory    *string                `json:"sub_category"`
	EffortTime     *string                `json:"effort_time"`
	RequestStatus  *string                `json:"request_status"`
	Remarks        *string                `json:"remarks"`
}

// TicketResponse is the full ticket representation.
type TicketResponse struct {
	ID             string                `json:"id"`
	SlNo           int64                 `json:"sl_no"`
	RequestID      string                `json:"request_id"`
	CreatedDate    string                `json:"created_date"`
	StartTime      *string               `json:"start_time"`
	EndTime        *string               `json:"end_time"`
	UserName       string                `json:"user_name"`
	Process        string                `json:"process"`
	ReportedBy     string                `json:"reported_by"`
	Priority       domain.TicketPriority `json:"priority"`
	TechnicianName string                `json:"technician_name"`
	IssueCategory  string                `json:"issue_category"`
	SubCategory    string                `json:"sub_category"`
	EffortTime     string                `json:"effort_time"`
	RequestStatus  string                `json:"request_status"`
	Remarks        string                `json:"remarks"`
	CreatedBy      string                `json:"created_by"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// MutationResult reports the outcome of an update or delete.
type MutationResult struct {
	Success bool `json:"success"`
}

// DashboardStatsResponse aggregates the visible ticket set.
type DashboardStatsResponse struct {
	Total      int                           `json:"total"`
	Open       int                           `json:"open"`
	Closed     int                           `json:"closed"`
	ByPriority map[domain.TicketPriority]int `json:"by_priority"`
	ByCategory map[string]int                `json:"by_category"`
}
