package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate while it changes state.
// Events are collected after a successful commit and handed to the publisher.
type DomainEvent interface {
	EventID() UUID
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// EventRecorder is embedded into aggregates that raise domain events.
type EventRecorder struct {
	events []DomainEvent
}

// Record appends an event to the pending list.
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// DomainEvents returns the pending events in the order they were recorded.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// ClearDomainEvents drops the pending events once they have been dispatched.
func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
