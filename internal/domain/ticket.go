package domain

import "time"

// TicketPriority enumerates urgency tiers for tickets.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)

// ValidPriority reports whether p is one of the known tiers.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// Request status values the workflow writes. The column itself is a free
// string and tickets may move between these in either direction.
const (
	TicketStatusOpen   = "Open"
	TicketStatusClosed = "Closed"
)

// Ticket is the support request record. ID, SlNo, RequestID, CreatedDate and
// CreatedBy are fixed at creation and never mutated afterwards.
type Ticket struct {
	ID             string
	SlNo           int64
	RequestID      string
	CreatedDate    string
	StartTime      *string
	EndTime        *string
	UserName       string
	Process        string
	ReportedBy     string
	Priority       TicketPriority
	TechnicianName string
	IssueCategory  string
	SubCategory    string
	EffortTime     string
	RequestStatus  string
	Remarks        string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TicketPatch carries a partial ticket update. Nil fields are left untouched.
// For StartTime and EndTime an empty string clears the stored value. Identity
// fields and CreatedBy are not representable here and therefore cannot be
// altered through an update.
type TicketPatch struct {
	StartTime      *string
	EndTime        *string
	UserName       *string
	Process        *string
	ReportedBy     *string
	Priority       *TicketPriority
	TechnicianName *string
	IssueCategory  *string
	SubCategory    *string
	EffortTime     *string
	RequestStatus  *string
	Remarks        *string
}

// Empty reports whether the patch carries no changes.
func (p TicketPatch) Empty() bool {
	return p.StartTime == nil && p.EndTime == nil && p.UserName == nil &&
		p.Process == nil && p.ReportedBy == nil && p.Priority == nil &&
		p.TechnicianName == nil && p.IssueCategory == nil && p.SubCategory == nil &&
		p.EffortTime == nil && p.RequestStatus == nil && p.Remarks == nil
}
