package bracket

import (
	"fmt"
	"slices"
)

// AdvanceRound opens the next round. Under AdvanceGated the current round
// has to be complete unless force is set.
func (e *Engine) AdvanceRound(s Snapshot, force bool) (Snapshot, []Event, error) {
	if e.advancePolicy == AdvanceGated && !force {
		if err := RoundComplete(s); err != nil {
			return s, nil, err
		}
	}
	next := s.Clone()
	next.CurrentRound++
	return next, nil, nil
}

// RoundComplete reports why the open round cannot be closed yet, or nil.
func RoundComplete(s Snapshot) error {
	matches := MatchesForRound(s, s.CurrentRound)
	if len(matches) == 0 {
		return fmt.Errorf("%w: round %d has no matches yet", ErrValidation, s.CurrentRound)
	}
	for _, m := range matches {
		if !m.Decided() {
			return fmt.Errorf("%w: %s in round %d has no winner yet", ErrValidation, matchTitle(s, m), s.CurrentRound)
		}
	}
	if pool := UnmatchedEntries(s, s.CurrentRound); len(pool) > 0 {
		return fmt.Errorf("%w: %d tickets are still waiting to be paired in round %d", ErrValidation, len(pool), s.CurrentRound)
	}
	return nil
}

// ResetCurrentRound throws away every match of the open round and puts all
// tickets that reached it back in the pool.
func (e *Engine) ResetCurrentRound(s Snapshot) (Snapshot, []Event, error) {
	next := s.Clone()
	round := next.CurrentRound
	next.Matches = slices.DeleteFunc(next.Matches, func(m Match) bool { return m.Round == round })
	for i := range next.Entries {
		if next.Entries[i].CurrentRound >= round {
			next.Entries[i].Status = EntryActive
			next.Entries[i].CurrentRound = round
		}
	}
	return next, nil, nil
}

// ResetTournament wipes the roster and the bracket. The event log and the
// live stream settings survive; use ClearEvents to empty the log.
func (e *Engine) ResetTournament(s Snapshot) (Snapshot, []Event, error) {
	next := s.Clone()
	next.Participants = []Participant{}
	next.Entries = []Entry{}
	next.Matches = []Match{}
	next.CurrentRound = 1
	return next, nil, nil
}
