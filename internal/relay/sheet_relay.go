package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/cybervibe/helpdesk/internal/config"
	"github.com/cybervibe/helpdesk/internal/events"
	"github.com/cybervibe/helpdesk/internal/export"
	"github.com/cybervibe/helpdesk/internal/observability"
)

// SheetRelay forwards every ticket change to the configured spreadsheet
// endpoint, best effort. Events are queued on a buffered channel and drained
// by a single worker goroutine, so a forward never blocks or fails the
// mutation that triggered it. Nothing is retried and nothing is read back.
type SheetRelay struct {
	cfg     config.SheetConfig
	logger  *zap.Logger
	metrics *observability.Metrics
	client  *http.Client
	queue   chan events.Event
	done    chan struct{}
}

// NewSheetRelay builds the relay. It is inert until Start is called.
func NewSheetRelay(cfg config.SheetConfig, logger *zap.Logger, metrics *observability.Metrics) *SheetRelay {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	return &SheetRelay{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		client: &http.Client{
			Timeout:       cfg.Timeout(),
			CheckRedirect: redirectPolicy(cfg.FollowRedirect),
		},
		queue: make(chan events.Event, queueSize),
		done:  make(chan struct{}),
	}
}

// RegisterHandlers subscribes the relay to ticket change events.
func (r *SheetRelay) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketChanged, r.enqueue)
}

// Start launches the worker goroutine draining the queue.
func (r *SheetRelay) Start() {
	go func() {
		defer close(r.done)
		for event := range r.queue {
			r.forward(event)
		}
	}()
}

// Stop closes the queue and waits for in-flight forwards to finish.
func (r *SheetRelay) Stop() {
	close(r.queue)
	<-r.done
}

// enqueue hands the event to the worker without blocking the publisher. A
// full queue drops the event; the mirror is best effort.
func (r *SheetRelay) enqueue(_ context.Context, event events.Event) {
	select {
	case r.queue <- event:
	default:
		r.metrics.RecordRelay("dropped")
		r.logger.Warn("sheet relay queue full; dropping event", zap.String("event_id", event.ID))
	}
}

func (r *SheetRelay) forward(event events.Event) {
	payload, ok := event.Payload.(events.TicketChangedPayload)
	if !ok {
		return
	}
	if r.cfg.WebhookURL == "" {
		r.metrics.RecordRelay("skipped")
		r.logger.Debug("sheet relay not configured; skipping forward",
			zap.String("action", string(payload.Action)),
			zap.String("request_id", payload.Snapshot.RequestID))
		return
	}

	body, err := json.Marshal(sheetPayload(payload))
	if err != nil {
		r.metrics.RecordRelay("failed")
		r.logger.Error("sheet relay marshal failed", zap.Error(err))
		return
	}

	resp, err := r.client.Post(r.cfg.WebhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		r.metrics.RecordRelay("failed")
		r.logger.Warn("sheet relay forward failed",
			zap.String("action", string(payload.Action)),
			zap.String("request_id", payload.Snapshot.RequestID),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.metrics.RecordRelay("failed")
		r.logger.Warn("sheet relay got non-2xx response",
			zap.String("action", string(payload.Action)),
			zap.String("request_id", payload.Snapshot.RequestID),
			zap.Int("status", resp.StatusCode))
		return
	}

	r.metrics.RecordRelay("sent")
	r.logger.Info("sheet relay forwarded",
		zap.String("action", string(payload.Action)),
		zap.String("request_id", payload.Snapshot.RequestID),
		zap.Int("status", resp.StatusCode))
}

// sheetPayload serializes the snapshot into the fixed column-name mapping
// shared with the CSV export, plus the action tag.
func sheetPayload(payload events.TicketChangedPayload) map[string]any {
	values := export.FieldValues(payload.Snapshot)
	body := make(map[string]any, len(export.Columns)+1)
	body["action"] = string(payload.Action)
	for i, column := range export.Columns {
		body[column] = values[i]
	}
	// the sink expects the ordinal as a number, not a string
	body["Sl No"] = payload.Snapshot.SlNo
	return body
}

// redirectPolicy allows at most one redirect hop when enabled; spreadsheet
// webhook endpoints commonly answer the POST with a 302.
func redirectPolicy(follow bool) func(req *http.Request, via []*http.Request) error {
	return func(_ *http.Request, via []*http.Request) error {
		if follow && len(via) <= 1 {
			return nil
		}
		return http.ErrUseLastResponse
	}
}
