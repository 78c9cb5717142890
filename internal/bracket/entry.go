package bracket

import "github.com/google/uuid"

const (
	MinTicket           = 1
	MaxTicket           = 200
	MaxTicketsPerPlayer = 3
)

type EntryStatus string

const (
	EntryActive     EntryStatus = "active"
	EntryEliminated EntryStatus = "eliminated"
	EntryWinner     EntryStatus = "winner"
)

type Participant struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	EntryNumbers []int     `json:"entryNumbers"`
}

// Entry is one draw ticket. ParticipantName is a copy of the owner's name
// and has to follow renames.
type Entry struct {
	Number          int         `json:"number"`
	ParticipantID   uuid.UUID   `json:"participantId"`
	ParticipantName string      `json:"participantName"`
	Status          EntryStatus `json:"status"`
	CurrentRound    int         `json:"currentRound"`
}

func (e Entry) IsActive() bool {
	return e.Status == EntryActive
}
