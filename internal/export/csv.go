package export

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cybervibe/helpdesk/internal/domain"
)

// Columns is the fixed header order shared between the CSV export and the
// spreadsheet mirror. This is a wire contract with the external sink: order
// and spelling must not change.
var Columns = []string{
	"Sl No",
	"Request/Complaint ID",
	"Created Date",
	"Start Time",
	"End Time",
	"User Name",
	"Process",
	"Reported By",
	"Priority",
	"Technician Name",
	"Issue Category",
	"Sub-category",
	"Effort Time",
	"Request Status",
	"Remarks",
}

// FieldValues returns the ticket's values in Columns order.
func FieldValues(t domain.Ticket) []string {
	return []string{
		strconv.FormatInt(t.SlNo, 10),
		t.RequestID,
		t.CreatedDate,
		deref(t.StartTime),
		deref(t.EndTime),
		t.UserName,
		t.Process,
		t.ReportedBy,
		string(t.Priority),
		t.TechnicianName,
		t.IssueCategory,
		t.SubCategory,
		t.EffortTime,
		t.RequestStatus,
		t.Remarks,
	}
}

// WriteCSV serializes the tickets as a downloadable table: one header row in
// Columns order, one row per ticket, every field wrapped in double quotes.
// Quoting is simple wrapping only, matching the sink's expectations.
func WriteCSV(w io.Writer, tickets []domain.Ticket) error {
	if err := writeRow(w, Columns); err != nil {
		return err
	}
	for _, t := range tickets {
		if err := writeRow(w, FieldValues(t)); err != nil {
			return err
		}
	}
	return nil
}

// Filename builds the download name, e.g. IT_Tickets_2026-08-29.csv.
func Filename(prefix string, now time.Time) string {
	return prefix + "_" + now.Format("2006-01-02") + ".csv"
}

func writeRow(w io.Writer, fields []string) error {
	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(field)
		b.WriteByte('"')
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func deref(val *string) string {
	if val == nil {
		return ""
	}
	return *val
}
