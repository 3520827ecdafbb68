package events

import (
	"time"

	"github.com/cybervibe/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

// EventTicketChanged is emitted after every committed ticket mutation.
const EventTicketChanged EventType = "ticket_changed"

// ChangeAction tags which mutation produced a TicketChanged event.
type ChangeAction string

const (
	ActionCreate ChangeAction = "create"
	ActionUpdate ChangeAction = "update"
	ActionDelete ChangeAction = "delete"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string
	Type      EventType
	Timestamp time.Time
	Payload   any
}

// TicketChangedPayload carries the mutation kind and the full ticket
// snapshot. For deletes the snapshot is the pre-deletion record, since the
// row no longer exists to re-read.
type TicketChangedPayload struct {
	Action   ChangeAction
	Snapshot domain.Ticket
}
