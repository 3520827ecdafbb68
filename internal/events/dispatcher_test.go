package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var got []string
	dispatcher.Subscribe(EventTicketChanged, func(_ context.Context, e Event) {
		got = append(got, e.ID)
	})
	dispatcher.Subscribe(EventTicketChanged, func(_ context.Context, e Event) {
		got = append(got, e.ID+"-second")
	})

	dispatcher.Publish(context.Background(), Event{
		ID:        "evt-1",
		Type:      EventTicketChanged,
		Timestamp: time.Now(),
	})

	assert.Equal(t, []string{"evt-1", "evt-1-second"}, got)
}

func TestDispatcherIgnoresUnsubscribedTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(EventTicketChanged, func(_ context.Context, _ Event) {
		called = true
	})

	dispatcher.Publish(context.Background(), Event{ID: "evt-2", Type: EventType("something.else")})
	assert.False(t, called)
}
