package bracket

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

const DefaultTournamentID = "main"

// Snapshot is the whole state of one tournament (or season). It is stored
// and pushed to clients as a single document.
type Snapshot struct {
	ID           string        `json:"id"`
	Participants []Participant `json:"participants"`
	Entries      []Entry       `json:"entries"`
	Matches      []Match       `json:"matches"`
	CurrentRound int           `json:"current_round"`
	YoutubeLink  string        `json:"youtube_link"`
	ShowLive     bool          `json:"show_live"`
	Events       EventLog      `json:"events"`
	LastUpdate   time.Time     `json:"last_update"`
	Version      int64         `json:"version"`
}

func NewSnapshot(id string) Snapshot {
	if id == "" {
		id = DefaultTournamentID
	}
	return Snapshot{
		ID:           id,
		Participants: []Participant{},
		Entries:      []Entry{},
		Matches:      []Match{},
		CurrentRound: 1,
		Events:       EventLog{},
	}
}

// Clone deep copies the snapshot so engine operations never touch their input.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Participants = make([]Participant, len(s.Participants))
	for i, p := range s.Participants {
		p.EntryNumbers = slices.Clone(p.EntryNumbers)
		c.Participants[i] = p
	}
	c.Entries = slices.Clone(s.Entries)
	if c.Entries == nil {
		c.Entries = []Entry{}
	}
	c.Matches = make([]Match, len(s.Matches))
	for i, m := range s.Matches {
		c.Matches[i] = m.clone()
	}
	c.Events = slices.Clone(s.Events)
	if c.Events == nil {
		c.Events = EventLog{}
	}
	return c
}

func (s *Snapshot) participantIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.Participants, func(p Participant) bool { return p.ID == id })
}

func (s *Snapshot) entryIndex(number int) int {
	return slices.IndexFunc(s.Entries, func(e Entry) bool { return e.Number == number })
}

func (s *Snapshot) matchIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.Matches, func(m Match) bool { return m.ID == id })
}

// Entry looks up a ticket by number.
func (s Snapshot) Entry(number int) (Entry, bool) {
	if i := s.entryIndex(number); i >= 0 {
		return s.Entries[i], true
	}
	return Entry{}, false
}

func (s Snapshot) Participant(id uuid.UUID) (Participant, bool) {
	if i := s.participantIndex(id); i >= 0 {
		return s.Participants[i], true
	}
	return Participant{}, false
}

func (s Snapshot) Match(id uuid.UUID) (Match, bool) {
	if i := s.matchIndex(id); i >= 0 {
		return s.Matches[i], true
	}
	return Match{}, false
}
