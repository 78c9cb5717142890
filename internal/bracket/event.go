package bracket

import (
	"time"

	"github.com/google/uuid"
)

const MaxEvents = 100

type EventType string

const (
	EventRegistration  EventType = "registration"
	EventMatchPending  EventType = "match-pending"
	EventMatchProgress EventType = "match-progress"
	EventMatchFinished EventType = "match-finished"
)

type Event struct {
	ID        uuid.UUID      `json:"id"`
	Type      EventType      `json:"type"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Details   map[string]any `json:"details,omitempty"`
}

// EventLog is ordered most recent first and never holds more than MaxEvents.
type EventLog []Event

// Append returns a new log with events placed in front, in the order given
// (the last argument ends up first), trimmed to MaxEvents.
func (l EventLog) Append(events ...Event) EventLog {
	next := make(EventLog, 0, min(len(l)+len(events), MaxEvents))
	for i := len(events) - 1; i >= 0 && len(next) < MaxEvents; i-- {
		next = append(next, events[i])
	}
	for _, e := range l {
		if len(next) >= MaxEvents {
			break
		}
		next = append(next, e)
	}
	return next
}

func (l EventLog) Clear() EventLog {
	return EventLog{}
}

func (l EventLog) Latest() (Event, bool) {
	if len(l) == 0 {
		return Event{}, false
	}
	return l[0], true
}
