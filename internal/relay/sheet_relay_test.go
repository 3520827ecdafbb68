package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cybervibe/helpdesk/internal/config"
	"github.com/cybervibe/helpdesk/internal/domain"
	"github.com/cybervibe/helpdesk/internal/events"
	"github.com/cybervibe/helpdesk/internal/export"
	"github.com/cybervibe/helpdesk/internal/observability"
)

func changeEvent(action events.ChangeAction) events.Event {
	start := "09:15"
	return events.Event{
		ID:        "evt-relay-test",
		Type:      events.EventTicketChanged,
		Timestamp: time.Now(),
		Payload: events.TicketChangedPayload{
			Action: action,
			Snapshot: domain.Ticket{
				ID:             "0b9e2f5c-0000-4000-8000-000000000042",
				SlNo:           42,
				RequestID:      "REQ-260829-K3P",
				CreatedDate:    "2026-08-29",
				StartTime:      &start,
				UserName:       "Anita R",
				Process:        "Payroll",
				ReportedBy:     "Email",
				Priority:       domain.TicketPriorityMedium,
				TechnicianName: "suresh",
				IssueCategory:  "Software",
				SubCategory:    "Application Error",
				EffortTime:     "30m",
				RequestStatus:  domain.TicketStatusOpen,
				Remarks:        "spreadsheet add-in crashes on open",
			},
		},
	}
}

func newTestRelay(t *testing.T, cfg config.SheetConfig) *SheetRelay {
	t.Helper()
	return NewSheetRelay(cfg, zap.NewNop(), observability.NewMetrics())
}

func TestForwardSendsFixedColumnPayload(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := newTestRelay(t, config.SheetConfig{WebhookURL: srv.URL, TimeoutSeconds: 5})
	r.forward(changeEvent(events.ActionCreate))

	require.NotNil(t, received)
	assert.Len(t, received, len(export.Columns)+1)
	assert.Equal(t, "create", received["action"])
	for _, column := range export.Columns {
		assert.Contains(t, received, column)
	}
	// JSON numbers decode as float64; the ordinal must not arrive as a string
	assert.Equal(t, float64(42), received["Sl No"])
	assert.Equal(t, "REQ-260829-K3P", received["Request/Complaint ID"])
	assert.Equal(t, "09:15", received["Start Time"])
	assert.Equal(t, "", received["End Time"])
}

func TestForwardSkipsWhenUnconfigured(t *testing.T) {
	r := newTestRelay(t, config.SheetConfig{})
	// must be a no-op, not a panic or a hang
	r.forward(changeEvent(events.ActionUpdate))
}

func TestForwardAbsorbsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := newTestRelay(t, config.SheetConfig{WebhookURL: srv.URL, TimeoutSeconds: 5})
	r.forward(changeEvent(events.ActionDelete))

	srv.Close()
	r.forward(changeEvent(events.ActionDelete))
}

func TestForwardFollowsSingleRedirect(t *testing.T) {
	hits := 0
	var mux http.ServeMux
	srv := httptest.NewServer(&mux)
	defer srv.Close()

	mux.HandleFunc("/hook", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, srv.URL+"/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	})

	r := newTestRelay(t, config.SheetConfig{WebhookURL: srv.URL + "/hook", FollowRedirect: true, TimeoutSeconds: 5})
	r.forward(changeEvent(events.ActionCreate))
	assert.Equal(t, 1, hits)
}

func TestForwardStopsAtRedirectWhenDisabled(t *testing.T) {
	hits := 0
	var mux http.ServeMux
	srv := httptest.NewServer(&mux)
	defer srv.Close()

	mux.HandleFunc("/hook", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, srv.URL+"/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	})

	r := newTestRelay(t, config.SheetConfig{WebhookURL: srv.URL + "/hook", FollowRedirect: false, TimeoutSeconds: 5})
	r.forward(changeEvent(events.ActionCreate))
	assert.Equal(t, 0, hits)
}

func TestEnqueueDropsWhenQueueFull(t *testing.T) {
	r := newTestRelay(t, config.SheetConfig{QueueSize: 1})

	r.enqueue(context.Background(), changeEvent(events.ActionCreate))
	// second enqueue must not block even though nothing drains the queue
	done := make(chan struct{})
	go func() {
		r.enqueue(context.Background(), changeEvent(events.ActionCreate))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on full queue")
	}
}

func TestStartStopDrainsQueue(t *testing.T) {
	received := make(chan struct{}, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		received <- struct{}{}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := newTestRelay(t, config.SheetConfig{WebhookURL: srv.URL, QueueSize: 4, TimeoutSeconds: 5})
	r.Start()
	r.enqueue(context.Background(), changeEvent(events.ActionCreate))
	r.enqueue(context.Background(), changeEvent(events.ActionUpdate))
	r.Stop()

	assert.Len(t, received, 2)
}
