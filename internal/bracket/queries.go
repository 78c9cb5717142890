package bracket

import (
	"cmp"
	"slices"
)

// UnmatchedEntries is the pool for a round: active tickets waiting in that
// round that are not in any of its matches yet. Sorted by ticket number.
func UnmatchedEntries(s Snapshot, round int) []Entry {
	paired := make(map[int]bool)
	for _, m := range s.Matches {
		if m.Round != round {
			continue
		}
		if m.Entry1 != nil {
			paired[*m.Entry1] = true
		}
		if m.Entry2 != nil {
			paired[*m.Entry2] = true
		}
	}

	pool := make([]Entry, 0)
	for _, en := range s.Entries {
		if en.IsActive() && en.CurrentRound == round && !paired[en.Number] {
			pool = append(pool, en)
		}
	}
	slices.SortFunc(pool, func(a, b Entry) int { return cmp.Compare(a.Number, b.Number) })
	return pool
}

func ActiveEntries(s Snapshot) []Entry {
	active := make([]Entry, 0)
	for _, en := range s.Entries {
		if en.IsActive() {
			active = append(active, en)
		}
	}
	slices.SortFunc(active, func(a, b Entry) int { return cmp.Compare(a.Number, b.Number) })
	return active
}

// Champion is the owner of the last active ticket, if only one is left.
func Champion(s Snapshot) (string, bool) {
	active := ActiveEntries(s)
	if len(active) != 1 {
		return "", false
	}
	return active[0].ParticipantName, true
}

// MatchesForRound keeps creation order.
func MatchesForRound(s Snapshot, round int) []Match {
	matches := make([]Match, 0)
	for _, m := range s.Matches {
		if m.Round == round {
			matches = append(matches, m)
		}
	}
	return matches
}

var publicStatusOrder = map[MatchStatus]int{
	MatchInProgress: 0,
	MatchPending:    1,
	MatchFinished:   2,
}

// VisibleMatches is what the public bracket shows for a round: only
// validated matches, the ones being played first, newest first within a status.
func VisibleMatches(s Snapshot, round int) []Match {
	visible := make([]Match, 0)
	for _, m := range s.Matches {
		if m.Round == round && m.IsVisible {
			visible = append(visible, m)
		}
	}
	slices.SortStableFunc(visible, func(a, b Match) int {
		if c := cmp.Compare(statusRank(a.Status), statusRank(b.Status)); c != 0 {
			return c
		}
		return b.Timestamp.Compare(a.Timestamp)
	})
	return visible
}

func statusRank(st MatchStatus) int {
	if r, ok := publicStatusOrder[st]; ok {
		return r
	}
	return len(publicStatusOrder)
}

// EntryName returns the owner of a ticket; nil is an empty slot.
func EntryName(s Snapshot, number *int) string {
	if number == nil {
		return "BYE"
	}
	if en, ok := s.Entry(*number); ok {
		return en.ParticipantName
	}
	return "---"
}

// Rounds lists every round opened so far.
func Rounds(s Snapshot) []int {
	rounds := make([]int, 0, s.CurrentRound)
	for r := 1; r <= s.CurrentRound; r++ {
		rounds = append(rounds, r)
	}
	return rounds
}
