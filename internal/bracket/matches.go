package bracket

import (
	"fmt"
	"slices"

	"github.com/AdamBeresnev/sinuca-bracket/internal/utils"
	"github.com/google/uuid"
)

func describe(s Snapshot, number int) string {
	if en, ok := s.Entry(number); ok {
		return TicketLabel(number) + " " + en.ParticipantName
	}
	return TicketLabel(number)
}

func matchDetails(m Match) map[string]any {
	d := map[string]any{
		"matchId": m.ID.String(),
		"round":   m.Round,
	}
	if m.Entry1 != nil {
		d["entry1"] = *m.Entry1
	}
	if m.Entry2 != nil {
		d["entry2"] = *m.Entry2
	}
	if m.Winner != nil {
		d["winner"] = *m.Winner
	}
	return d
}

func (e *Engine) checkOpenRound(s Snapshot, round int) error {
	if round != s.CurrentRound {
		return fmt.Errorf("%w: round %d is not open for pairing (current round is %d)", ErrValidation, round, s.CurrentRound)
	}
	return nil
}

// CreateMatch pairs two tickets from the pool of the given round.
//
// Two tickets of the same player can be drawn against each other. In round 1
// that is refused and the operator draws again. From round 2 on the pairing is
// accepted and decided on the spot: the higher ticket number goes through.
// That tie-break is a house rule of the club, not something derived from play.
func (e *Engine) CreateMatch(s Snapshot, round, num1, num2 int) (Snapshot, []Event, error) {
	if num1 == num2 {
		return s, nil, fmt.Errorf("%w: ticket %s cannot play itself", ErrValidation, TicketLabel(num1))
	}
	if err := e.checkOpenRound(s, round); err != nil {
		return s, nil, err
	}

	pool := UnmatchedEntries(s, round)
	find := func(n int) (Entry, bool) {
		i := slices.IndexFunc(pool, func(en Entry) bool { return en.Number == n })
		if i < 0 {
			return Entry{}, false
		}
		return pool[i], true
	}
	en1, ok1 := find(num1)
	en2, ok2 := find(num2)
	if !ok1 || !ok2 {
		missing := num1
		if ok1 {
			missing = num2
		}
		return s, nil, fmt.Errorf("%w: ticket %s is not waiting to be paired in round %d", ErrValidation, TicketLabel(missing), round)
	}

	selfMatch := en1.ParticipantID == en2.ParticipantID
	if selfMatch && round == 1 {
		return s, nil, fmt.Errorf("%w: tickets %s and %s both belong to %s, draw again",
			ErrSelfMatch, TicketLabel(num1), TicketLabel(num2), en1.ParticipantName)
	}

	next := s.Clone()
	m := Match{
		ID:        e.newID(),
		Round:     round,
		Entry1:    &num1,
		Entry2:    &num2,
		Timestamp: e.now(),
		Status:    MatchPending,
	}

	if !selfMatch {
		next.Matches = append(next.Matches, m)
		ev := e.event(EventMatchPending,
			fmt.Sprintf("Round %d: %s vs %s", round, describe(s, num1), describe(s, num2)),
			matchDetails(m))
		return next, []Event{ev}, nil
	}

	winner, loser := max(num1, num2), min(num1, num2)
	m.Winner = &winner
	m.Status = MatchFinished
	m.IsVisible = true
	next.Matches = append(next.Matches, m)
	next.advance(winner, round)
	next.eliminate(loser, round)

	ev := e.event(EventMatchFinished,
		fmt.Sprintf("Round %d: %s drew both %s and %s, %s goes through",
			round, en1.ParticipantName, TicketLabel(num1), TicketLabel(num2), TicketLabel(winner)),
		matchDetails(m))
	return next, []Event{ev}, nil
}

// AssignBye sends the last unpaired ticket of the round straight through.
func (e *Engine) AssignBye(s Snapshot, round int) (Snapshot, []Event, error) {
	if err := e.checkOpenRound(s, round); err != nil {
		return s, nil, err
	}
	pool := UnmatchedEntries(s, round)
	if len(pool) != 1 {
		return s, nil, fmt.Errorf("%w: a bye needs exactly one unpaired ticket, round %d has %d", ErrValidation, round, len(pool))
	}

	number := pool[0].Number
	next := s.Clone()
	m := Match{
		ID:        e.newID(),
		Round:     round,
		Entry1:    &number,
		Winner:    utils.Ptr(number),
		IsBye:     true,
		Timestamp: e.now(),
		Status:    MatchFinished,
		IsVisible: true,
	}
	next.Matches = append(next.Matches, m)
	next.advance(number, round)

	ev := e.event(EventMatchFinished,
		fmt.Sprintf("Round %d: %s advances with a bye", round, describe(s, number)),
		matchDetails(m))
	return next, []Event{ev}, nil
}

// SetWinner records the result of a match. A previously recorded result is
// undone first, so the operator can correct a wrong click.
func (e *Engine) SetWinner(s Snapshot, matchID uuid.UUID, winner int) (Snapshot, []Event, error) {
	i := s.matchIndex(matchID)
	if i < 0 {
		return s, nil, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	m := s.Matches[i]
	if m.IsBye {
		return s, nil, fmt.Errorf("%w: a bye already has its winner", ErrValidation)
	}
	if !m.Has(winner) {
		return s, nil, fmt.Errorf("%w: ticket %s is not part of this match", ErrValidation, TicketLabel(winner))
	}

	next := s.Clone()
	nm := &next.Matches[i]
	if nm.Winner != nil {
		next.revert(*nm)
	}
	nm.Winner = &winner
	nm.Status = MatchFinished
	next.advance(winner, nm.Round)
	if loser, ok := nm.Loser(); ok {
		next.eliminate(loser, nm.Round)
	}

	msg := fmt.Sprintf("Round %d: %s wins", nm.Round, describe(s, winner))
	if loser, ok := nm.Loser(); ok {
		msg += " against " + describe(s, loser)
	}
	return next, []Event{e.event(EventMatchFinished, msg, matchDetails(*nm))}, nil
}

// ResetMatch clears a recorded result. A match without a winner is left as is.
func (e *Engine) ResetMatch(s Snapshot, matchID uuid.UUID) (Snapshot, []Event, error) {
	i := s.matchIndex(matchID)
	if i < 0 {
		return s, nil, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	m := s.Matches[i]
	if m.IsBye {
		return s, nil, fmt.Errorf("%w: a bye cannot be reset, delete it instead", ErrValidation)
	}
	if m.Winner == nil {
		return s, nil, nil
	}

	next := s.Clone()
	next.revert(m)
	nm := &next.Matches[i]
	nm.Winner = nil
	nm.Status = MatchInProgress

	ev := e.event(EventMatchProgress,
		fmt.Sprintf("Round %d: result of %s cleared", nm.Round, matchTitle(s, *nm)),
		matchDetails(*nm))
	return next, []Event{ev}, nil
}

// ClearWinner is another name for ResetMatch.
func (e *Engine) ClearWinner(s Snapshot, matchID uuid.UUID) (Snapshot, []Event, error) {
	return e.ResetMatch(s, matchID)
}

func (e *Engine) DeleteMatch(s Snapshot, matchID uuid.UUID) (Snapshot, []Event, error) {
	i := s.matchIndex(matchID)
	if i < 0 {
		return s, nil, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	next := s.Clone()
	if m := next.Matches[i]; m.Winner != nil {
		next.revert(m)
	}
	next.Matches = slices.Delete(next.Matches, i, i+1)
	return next, nil, nil
}

func (e *Engine) UpdateMatchStatus(s Snapshot, matchID uuid.UUID, status MatchStatus) (Snapshot, []Event, error) {
	if !status.Valid() {
		return s, nil, fmt.Errorf("%w: unknown match status %q", ErrValidation, status)
	}
	i := s.matchIndex(matchID)
	if i < 0 {
		return s, nil, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	next := s.Clone()
	nm := &next.Matches[i]
	nm.Status = status
	if status != MatchInProgress {
		return next, nil, nil
	}
	ev := e.event(EventMatchProgress,
		fmt.Sprintf("Round %d: %s is on the table", nm.Round, matchTitle(s, *nm)),
		matchDetails(*nm))
	return next, []Event{ev}, nil
}

func (e *Engine) ToggleVisibility(s Snapshot, matchID uuid.UUID) (Snapshot, []Event, error) {
	i := s.matchIndex(matchID)
	if i < 0 {
		return s, nil, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	next := s.Clone()
	next.Matches[i].IsVisible = !next.Matches[i].IsVisible
	return next, nil, nil
}

func matchTitle(s Snapshot, m Match) string {
	if m.Entry1 == nil {
		return "match"
	}
	if m.Entry2 == nil {
		return describe(s, *m.Entry1) + " (bye)"
	}
	return describe(s, *m.Entry1) + " vs " + describe(s, *m.Entry2)
}

// advance moves a ticket that won in round into the next one.
func (s *Snapshot) advance(number, round int) {
	if i := s.entryIndex(number); i >= 0 {
		s.Entries[i].Status = EntryActive
		s.Entries[i].CurrentRound = round + 1
	}
}

func (s *Snapshot) eliminate(number, round int) {
	if i := s.entryIndex(number); i >= 0 {
		s.Entries[i].Status = EntryEliminated
		s.Entries[i].CurrentRound = round
	}
}

// revert puts both tickets of m back to waiting in m's round. Tickets whose
// participant was removed in the meantime are skipped.
func (s *Snapshot) revert(m Match) {
	for _, n := range []*int{m.Entry1, m.Entry2} {
		if n == nil {
			continue
		}
		if i := s.entryIndex(*n); i >= 0 {
			s.Entries[i].Status = EntryActive
			s.Entries[i].CurrentRound = m.Round
		}
	}
}
