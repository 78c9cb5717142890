package bracket

import (
	"time"

	"github.com/AdamBeresnev/sinuca-bracket/internal/utils"
	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchPending    MatchStatus = "pending"
	MatchInProgress MatchStatus = "in-progress"
	MatchFinished   MatchStatus = "finished"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchPending, MatchInProgress, MatchFinished:
		return true
	}
	return false
}

// Match pairs two tickets of the same round. A bye has no Entry2 and is
// born finished with Entry1 as the winner.
type Match struct {
	ID    uuid.UUID `json:"id"`
	Round int       `json:"round"`

	Entry1 *int `json:"entry1"`
	Entry2 *int `json:"entry2"`
	Winner *int `json:"winner"`

	IsBye     bool        `json:"isBye"`
	Timestamp time.Time   `json:"timestamp"`
	Status    MatchStatus `json:"status"`
	IsVisible bool        `json:"isVisible"`
}

func (m *Match) Has(number int) bool {
	return (m.Entry1 != nil && *m.Entry1 == number) || (m.Entry2 != nil && *m.Entry2 == number)
}

func (m *Match) Decided() bool {
	return m.Winner != nil
}

func (m *Match) IsWinner(number int) bool {
	return m.Winner != nil && *m.Winner == number
}

func (m *Match) IsLoser(number int) bool {
	return m.Winner != nil && *m.Winner != number && m.Has(number)
}

// Loser returns the ticket that lost a decided match.
func (m *Match) Loser() (int, bool) {
	if m.Winner == nil || m.IsBye {
		return 0, false
	}
	if m.Entry1 != nil && *m.Entry1 != *m.Winner {
		return *m.Entry1, true
	}
	if m.Entry2 != nil && *m.Entry2 != *m.Winner {
		return *m.Entry2, true
	}
	return 0, false
}

func (m Match) clone() Match {
	m.Entry1 = utils.Clone(m.Entry1)
	m.Entry2 = utils.Clone(m.Entry2)
	m.Winner = utils.Clone(m.Winner)
	return m
}
