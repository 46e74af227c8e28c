package testutil

import (
	"context"
	"sync"

	"github.com/availsys/asset-availability-go/shell"
)

// CapturingEventOutbox implements shell.EventOutbox by collecting appended
// events for assertions.
type CapturingEventOutbox struct {
	mu     sync.Mutex
	events shell.StorableEvents
}

// NewCapturingEventOutbox creates an empty outbox double.
func NewCapturingEventOutbox() *CapturingEventOutbox {
	return &CapturingEventOutbox{}
}

// Append implements shell.EventOutbox.
func (o *CapturingEventOutbox) Append(_ context.Context, storableEvents ...shell.StorableEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.events = append(o.events, storableEvents...)

	return nil
}

// Events returns a copy of everything appended so far.
func (o *CapturingEventOutbox) Events() shell.StorableEvents {
	o.mu.Lock()
	defer o.mu.Unlock()

	events := make(shell.StorableEvents, len(o.events))
	copy(events, o.events)

	return events
}

// LastEventType returns the event type of the most recent append, or "".
func (o *CapturingEventOutbox) LastEventType() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.events) == 0 {
		return ""
	}

	return o.events[len(o.events)-1].EventType
}
