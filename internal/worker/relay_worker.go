package worker

import (
	"github.com/cybervibe/helpdesk/internal/events"
	"github.com/cybervibe/helpdesk/internal/relay"
)

// StartRelayWorker subscribes the sheet relay to ticket change events and
// launches its drain loop.
func StartRelayWorker(sheetRelay *relay.SheetRelay, dispatcher events.Dispatcher) {
	if sheetRelay == nil {
		return
	}
	sheetRelay.RegisterHandlers(dispatcher)
	sheetRelay.Start()
}
