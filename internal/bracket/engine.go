package bracket

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type AdvancePolicy string

const (
	// AdvanceGated only opens the next round once the current one is fully decided.
	AdvanceGated AdvancePolicy = "gated"
	AdvanceFree  AdvancePolicy = "free"
)

func (p AdvancePolicy) Valid() bool {
	return p == AdvanceGated || p == AdvanceFree
}

// Engine applies bracket commands to a Snapshot. Every command returns a new
// snapshot together with the events it produced; the input is left untouched,
// and on error the input is returned as is.
type Engine struct {
	now           func() time.Time
	newID         func() uuid.UUID
	advancePolicy AdvancePolicy
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(e *Engine) { e.newID = newID }
}

func WithAdvancePolicy(p AdvancePolicy) Option {
	return func(e *Engine) {
		if p.Valid() {
			e.advancePolicy = p
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:           func() time.Time { return time.Now().UTC() },
		newID:         uuid.New,
		advancePolicy: AdvanceGated,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) AdvancePolicy() AdvancePolicy {
	return e.advancePolicy
}

func (e *Engine) event(typ EventType, msg string, details map[string]any) Event {
	return Event{
		ID:        e.newID(),
		Type:      typ,
		Message:   msg,
		Timestamp: e.now(),
		Details:   details,
	}
}

func (e *Engine) RegisterParticipant(s Snapshot, name string, tickets []int) (Snapshot, []Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, nil, fmt.Errorf("%w: participant name is required", ErrValidation)
	}
	if err := validateTickets(tickets); err != nil {
		return s, nil, err
	}

	var taken []int
	for _, n := range tickets {
		if _, ok := s.Entry(n); ok {
			taken = append(taken, n)
		}
	}
	if len(taken) > 0 {
		return s, nil, fmt.Errorf("%w: tickets already in use: %s", ErrValidation, ticketList(taken))
	}

	next := s.Clone()
	p := Participant{
		ID:           e.newID(),
		Name:         name,
		EntryNumbers: slices.Clone(tickets),
	}
	next.Participants = append(next.Participants, p)
	for _, n := range tickets {
		next.Entries = append(next.Entries, Entry{
			Number:          n,
			ParticipantID:   p.ID,
			ParticipantName: name,
			Status:          EntryActive,
			CurrentRound:    next.CurrentRound,
		})
	}

	ev := e.event(EventRegistration,
		fmt.Sprintf("%s registered with %s", name, ticketList(tickets)),
		map[string]any{"participantId": p.ID.String(), "tickets": slices.Clone(tickets)})
	return next, []Event{ev}, nil
}

// RemoveParticipant drops the participant and all of its tickets. Matches
// already played keep the raw ticket numbers.
func (e *Engine) RemoveParticipant(s Snapshot, id uuid.UUID) (Snapshot, []Event, error) {
	i := s.participantIndex(id)
	if i < 0 {
		return s, nil, fmt.Errorf("%w: participant %s", ErrNotFound, id)
	}

	next := s.Clone()
	next.Participants = slices.Delete(next.Participants, i, i+1)
	next.Entries = slices.DeleteFunc(next.Entries, func(en Entry) bool { return en.ParticipantID == id })
	return next, nil, nil
}

func (e *Engine) EditParticipant(s Snapshot, id uuid.UUID, name string) (Snapshot, []Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, nil, fmt.Errorf("%w: participant name is required", ErrValidation)
	}
	i := s.participantIndex(id)
	if i < 0 {
		return s, nil, fmt.Errorf("%w: participant %s", ErrNotFound, id)
	}

	next := s.Clone()
	next.Participants[i].Name = name
	for j := range next.Entries {
		if next.Entries[j].ParticipantID == id {
			next.Entries[j].ParticipantName = name
		}
	}
	return next, nil, nil
}

func (e *Engine) SetLiveStream(s Snapshot, link string, show bool) (Snapshot, []Event, error) {
	next := s.Clone()
	next.YoutubeLink = strings.TrimSpace(link)
	next.ShowLive = show
	return next, nil, nil
}

func (e *Engine) ClearEvents(s Snapshot) (Snapshot, []Event, error) {
	next := s.Clone()
	next.Events = next.Events.Clear()
	return next, nil, nil
}
