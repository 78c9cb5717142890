package bracket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(opts ...Option) *Engine {
	base := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return NewEngine(append([]Option{WithClock(clock)}, opts...)...)
}

func register(t *testing.T, e *Engine, s Snapshot, name string, tickets ...int) (Snapshot, uuid.UUID) {
	t.Helper()
	next, events, err := e.RegisterParticipant(s, name, tickets)
	require.NoError(t, err)
	require.Len(t, events, 1)
	return next, next.Participants[len(next.Participants)-1].ID
}

func pair(t *testing.T, e *Engine, s Snapshot, n1, n2 int) (Snapshot, Match) {
	t.Helper()
	next, _, err := e.CreateMatch(s, s.CurrentRound, n1, n2)
	require.NoError(t, err)
	return next, next.Matches[len(next.Matches)-1]
}

func entry(t *testing.T, s Snapshot, number int) Entry {
	t.Helper()
	en, ok := s.Entry(number)
	require.True(t, ok, "ticket %d should exist", number)
	return en
}

func TestRegisterParticipant(t *testing.T) {
	e := newTestEngine()
	base, _ := register(t, e, NewSnapshot("main"), "Alice", 1, 2)

	testCases := []struct {
		name        string
		player      string
		tickets     []int
		expectedErr error
		errContains string
	}{
		{name: "Single ticket", player: "Bob", tickets: []int{3}},
		{name: "Three tickets", player: "Bob", tickets: []int{3, 4, 200}},
		{name: "Name gets trimmed", player: "  Bob  ", tickets: []int{7}},
		{name: "Empty name", player: "   ", tickets: []int{3}, expectedErr: ErrValidation},
		{name: "No tickets", player: "Bob", tickets: nil, expectedErr: ErrValidation},
		{name: "Too many tickets", player: "Bob", tickets: []int{3, 4, 5, 6}, expectedErr: ErrValidation},
		{name: "Ticket zero", player: "Bob", tickets: []int{0}, expectedErr: ErrValidation},
		{name: "Ticket above 200", player: "Bob", tickets: []int{201}, expectedErr: ErrValidation},
		{name: "Same ticket twice", player: "Bob", tickets: []int{3, 3}, expectedErr: ErrValidation},
		{name: "Ticket owned by someone else", player: "Bob", tickets: []int{2, 3}, expectedErr: ErrValidation, errContains: "#002"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, events, err := e.RegisterParticipant(base, tc.player, tc.tickets)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				if tc.errContains != "" {
					assert.Contains(t, err.Error(), tc.errContains)
				}
				assert.Equal(t, base, next, "snapshot must be unchanged on failure")
				assert.Empty(t, events)
				return
			}
			require.NoError(t, err)
			require.Len(t, next.Participants, 2)
			p := next.Participants[1]
			assert.Equal(t, "Bob", p.Name)
			assert.Equal(t, tc.tickets, p.EntryNumbers)
			assert.Len(t, next.Entries, 2+len(tc.tickets))

			for _, n := range tc.tickets {
				en := entry(t, next, n)
				assert.Equal(t, p.ID, en.ParticipantID)
				assert.Equal(t, "Bob", en.ParticipantName)
				assert.Equal(t, EntryActive, en.Status)
				assert.Equal(t, 1, en.CurrentRound)
			}

			require.Len(t, events, 1)
			assert.Equal(t, EventRegistration, events[0].Type)
			assert.Contains(t, events[0].Message, "Bob")
		})
	}
}

func TestRegisterParticipant_UsesRoundCounter(t *testing.T) {
	e := newTestEngine()
	s := NewSnapshot("main")
	s.CurrentRound = 3

	s, _ = register(t, e, s, "Late", 10, 11)
	assert.Equal(t, 3, entry(t, s, 10).CurrentRound)
	assert.Equal(t, 3, entry(t, s, 11).CurrentRound)
}

func TestRegisterParticipant_CollisionScenario(t *testing.T) {
	e := newTestEngine()
	s, _ := register(t, e, NewSnapshot("main"), "Alice", 1, 2)

	_, _, err := e.RegisterParticipant(s, "Bob", []int{2, 3})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "#002")

	s, _, err = e.RegisterParticipant(s, "Bob", []int{3, 4})
	require.NoError(t, err)
	assert.Len(t, s.Entries, 4)
}

func TestRemoveParticipant(t *testing.T) {
	e := newTestEngine()
	s, alice := register(t, e, NewSnapshot("main"), "Alice", 1, 2)
	s, _ = register(t, e, s, "Bob", 3)
	s, m := pair(t, e, s, 1, 3)

	next, _, err := e.RemoveParticipant(s, alice)
	require.NoError(t, err)

	assert.Len(t, next.Participants, 1)
	assert.Len(t, next.Entries, 1)
	_, ok := next.Entry(1)
	assert.False(t, ok)

	// History keeps the raw ticket numbers
	kept, ok := next.Match(m.ID)
	require.True(t, ok)
	assert.Equal(t, 1, *kept.Entry1)
	assert.Equal(t, "---", EntryName(next, kept.Entry1))

	_, _, err = e.RemoveParticipant(next, alice)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditParticipant(t *testing.T) {
	e := newTestEngine()
	s, alice := register(t, e, NewSnapshot("main"), "Alice", 1, 2)
	s, _ = register(t, e, s, "Bob", 3)

	next, _, err := e.EditParticipant(s, alice, "Alicia")
	require.NoError(t, err)

	p, ok := next.Participant(alice)
	require.True(t, ok)
	assert.Equal(t, "Alicia", p.Name)
	assert.Equal(t, "Alicia", entry(t, next, 1).ParticipantName)
	assert.Equal(t, "Alicia", entry(t, next, 2).ParticipantName)
	assert.Equal(t, "Bob", entry(t, next, 3).ParticipantName)
	assert.Equal(t, "Alice", entry(t, s, 1).ParticipantName, "input snapshot must not change")

	_, _, err = e.EditParticipant(s, uuid.New(), "Nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = e.EditParticipant(s, alice, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUnmatchedEntries(t *testing.T) {
	e := newTestEngine()
	s, _ := register(t, e, NewSnapshot("main"), "Alice", 4, 1)
	s, _ = register(t, e, s, "Bob", 3, 2)
	s, _ = register(t, e, s, "Carol", 5)

	numbers := func(entries []Entry) []int {
		var out []int
		for _, en := range entries {
			out = append(out, en.Number)
		}
		return out
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, numbers(UnmatchedEntries(s, 1)))

	s, m := pair(t, e, s, 1, 3)
	pool := numbers(UnmatchedEntries(s, 1))
	assert.Equal(t, []int{2, 4, 5}, pool)
	assert.NotContains(t, pool, *m.Entry1)
	assert.NotContains(t, pool, *m.Entry2)

	// Winners wait in round 2, losers are gone
	s, _, err := e.SetWinner(s, m.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 5}, numbers(UnmatchedEntries(s, 1)))
	assert.Equal(t, []int{1}, numbers(UnmatchedEntries(s, 2)))
}

func TestCreateMatch(t *testing.T) {
	e := newTestEngine()
	s, _ := register(t, e, NewSnapshot("main"), "Alice", 1)
	s, _ = register(t, e, s, "Bob", 2)
	s, _ = register(t, e, s, "Carol", 3)

	t.Run("Creates a hidden pending match", func(t *testing.T) {
		next, events, err := e.CreateMatch(s, 1, 1, 2)
		require.NoError(t, err)
		require.Len(t, next.Matches, 1)

		m := next.Matches[0]
		assert.Equal(t, 1, m.Round)
		assert.Equal(t, 1, *m.Entry1)
		assert.Equal(t, 2, *m.Entry2)
		assert.Nil(t, m.Winner)
		assert.False(t, m.IsBye)
		assert.False(t, m.IsVisible)
		assert.Equal(t, MatchPending, m.Status)
		assert.False(t, m.Timestamp.IsZero())

		require.Len(t, events, 1)
		assert.Equal(t, EventMatchPending, events[0].Type)
		assert.Empty(t, s.Matches, "input snapshot must not change")
	})

	t.Run("Same ticket twice fails in every round", func(t *testing.T) {
		for round := 1; round <= 3; round++ {
			rs := s
			rs.CurrentRound = round
			_, _, err := e.CreateMatch(rs, round, 2, 2)
			assert.ErrorIs(t, err, ErrValidation, "round %d", round)
		}
	})

	t.Run("Unknown ticket", func(t *testing.T) {
		_, _, err := e.CreateMatch(s, 1, 1, 99)
		require.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "#099")
	})

	t.Run("Ticket already paired this round", func(t *testing.T) {
		next, _ := pair(t, e, s, 1, 2)
		_, _, err := e.CreateMatch(next, 1, 2, 3)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Round not open", func(t *testing.T) {
		_, _, err := e.CreateMatch(s, 2, 1, 2)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestCreateMatch_SelfMatch(t *testing.T) {
	e := newTestEngine()
	s, _ := register(t, e, NewSnapshot("main"), "Carlos", 5, 9)
	s, _ = register(t, e, s, "Alice", 1)
	s, _ = register(t, e, s, "Bob", 2)

	// Round 1: the operator has to draw again
	_, _, err := e.CreateMatch(s, 1, 5, 9)
	require.ErrorIs(t, err, ErrSelfMatch)
	assert.Contains(t, err.Error(), "Carlos")

	s, m1 := pair(t, e, s, 5, 1)
	s, m2 := pair(t, e, s, 9, 2)
	s, _, err = e.SetWinner(s, m1.ID, 5)
	require.NoError(t, err)
	s, _, err = e.SetWinner(s, m2.ID, 9)
	require.NoError(t, err)
	s, _, err = e.AdvanceRound(s, false)
	require.NoError(t, err)
	require.Equal(t, 2, s.CurrentRound)

	// Round 2: decided right away, the higher ticket goes through
	s, events, err := e.CreateMatch(s, 2, 5, 9)
	require.NoError(t, err)

	m := s.Matches[len(s.Matches)-1]
	require.NotNil(t, m.Winner)
	assert.Equal(t, 9, *m.Winner)
	assert.Equal(t, MatchFinished, m.Status)
	assert.True(t, m.IsVisible)

	assert.Equal(t, EntryActive, entry(t, s, 9).Status)
	assert.Equal(t, 3, entry(t, s, 9).CurrentRound)
	assert.Equal(t, EntryEliminated, entry(t, s, 5).Status)

	require.Len(t, events, 1)
	assert.Equal(t, EventMatchFinished, events[0].Type)

	champion, ok := Champion(s)
	assert.True(t, ok)
	assert.Equal(t, "Carlos", champion)
}

func TestCreateMatch_SelfMatchLowerTicketFirst(t *testing.T) {
	e := newTestEngine()
	s, _ := register(t, e, NewSnapshot("main"), "Carlos", 40, 7)
	s.CurrentRound = 2
	for i := range s.Entries {
		s.Entries[i].CurrentRound = 2
	}

	s, _, err := e.CreateMatch(s, 2, 40, 7)
	require.NoError(t, err)
	assert.Equal(t, 40, *s.Matches[0].Winner)
}

func TestAssignBye(t *testing.T) {
	e := newTestEngine()
	s, _ := register(t, e, NewSnapshot("main"), "Alice", 1)
	s, _ = register(t, e, s, "Bob", 2)
	s, _ = register(t, e, s, "Carol", 3)

	_, _, err := e.AssignBye(s, 1)
	require.ErrorIs(t, err, ErrValidation, "three tickets are still in the pool")

	s, _ = pair(t, e, s, 1, 2)
	before := entry(t, s, 3).CurrentRound

	s, events, err := e.AssignBye(s, 1)
	require.NoError(t, err)

	bye := s.Matches[len(s.Matches)-1]
	assert.True(t, bye.IsBye)
	assert.Equal(t, 3, *bye.Entry1)
	assert.Nil(t, bye.Entry2)
	require.NotNil(t, bye.Winner)
	assert.Equal(t, *bye.Entry1, *bye.Winner)
	assert.Equal(t, MatchFinished, bye.Status)
	assert.True(t, bye.IsVisible)
	assert.Equal(t, before+1, entry(t, s, 3).CurrentRound)
	require.Len(t, events, 1)
	assert.Equal(t, EventMatchFinished, events[0].Type)

	_, _, err = e.AssignBye(s, 1)
	assert.ErrorIs(t, err, ErrValidation, "pool is empty now")
}

func TestSetWinner(t *testing.T) {
	e := newTestEngine()
	s, _ := register(t, e, NewSnapshot("main"), "Alice", 1)
	s, _ = register(t, e, s, "Bob", 2)
	s, _ = register(t, e, s, "Carol", 3)
	s, m := pair(t, e, s, 1, 2)

	t.Run("Records the result", func(t *testing.T) {
		next, events, err := e.SetWinner(s, m.ID, 2)
		require.NoError(t, err)

		got, _ := next.Match(m.ID)
		assert.Equal(t, 2, *got.Winner)
		assert.Equal(t, MatchFinished, got.Status)
		assert.Equal(t, EntryActive, entry(t, next, 2).Status)
		assert.Equal(t, 2, entry(t, next, 2).CurrentRound)
		assert.Equal(t, EntryEliminated, entry(t, next, 1).Status)
		assert.Equal(t, 1, entry(t, next, 1).CurrentRound)

		require.Len(t, events, 1)
		assert.Equal(t, EventMatchFinished, events[0].Type)
		assert.Contains(t, events[0].Message, "Bob")
	})

	t.Run("Changing the winner undoes the first result", func(t *testing.T) {
		next, _, err := e.SetWinner(s, m.ID, 2)
		require.NoError(t, err)
		next, _, err = e.SetWinner(next, m.ID, 1)
		require.NoError(t, err)

		assert.Equal(t, EntryActive, entry(t, next, 1).Status)
		assert.Equal(t, 2, entry(t, next, 1).CurrentRound)
		assert.Equal(t, EntryEliminated, entry(t, next, 2).Status)
		assert.Equal(t, 1, entry(t, next, 2).CurrentRound)
	})

	t.Run("Ticket not in the match", func(t *testing.T) {
		_, _, err := e.SetWinner(s, m.ID, 3)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Unknown match", func(t *testing.T) {
		_, _, err := e.SetWinner(s, uuid.New(), 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Bye", func(t *testing.T) {
		next, _, err := e.AssignBye(s, 1)
		require.NoError(t, err)
		bye := next.Matches[len(next.Matches)-1]
		_, _, err = e.SetWinner(next, bye.ID, 3)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestSetWinnerThenResetMatch_RoundTrip(t *testing.T) {
	e := newTestEngine()
	s, _ := register(t, e, NewSnapshot("main"), "Alice", 1)
	s, _ = register(t, e, s, "Bob", 2)
	s, m := pair(t, e, s, 1, 2)

	for _, winner := range []int{1, 2} {
		won, _, err := e.SetWinner(s, m.ID, winner)
		require.NoError(t, err)

		reset, events, err := e.ResetMatch(won, m.ID)
		require.NoError(t, err)
		require.Len(t, events, 1)

		for _, n := range []int{1, 2} {
			en := entry(t, reset, n)
			assert.Equal(t, EntryActive, en.Status)
			assert.Equal(t, m.Round, en.CurrentRound)
		}
		got, _ := reset.Match(m.ID)
		assert.Nil(t, got.Winner)
		assert.Equal(t, MatchInProgress, got.Status)
	}
}

func TestResetMatch(t *testing.T) {
	e := newTestEngine()
	s, _ := register(t, e, NewSnapshot("main"), "Alice", 1)
	s, _ = register(t, e, s, "Bob", 2)
	s, _ = register(t, e, s, "Carol", 3)
	s, m := pair(t, e, s, 1, 2)

	// No winner yet: nothing to undo
	next, events, err := e.ResetMatch(s, m.ID)
	require.NoError(t, err)
	assert.Equal(t, s, next)
	assert.Empty(t, events)

	_, _, err = e.ClearWinner(s, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	s, _, err = e.AssignBye(s, 1)
	require.NoError(t, err)
	bye := s.Matches[len(s.Matches)-1]
	_, _, err = e.ResetMatch(s, bye.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteMatch(t *testing.T) {
	e := newTestEngine()
	s, _ := register(t, e, NewSnapshot("main"), "Alice", 1)
	s, _ = register(t, e, s, "Bob", 2)
	s, _ = register(t, e, s, "Carol", 3)
	s, m := pair(t, e, s, 1, 2)
	s, _, err := e.SetWinner(s, m.ID, 1)
	require.NoError(t, err)
	s, _, err = e.AssignBye(s, 1)
	require.NoError(t, err)
	bye := s.Matches[len(s.Matches)-1]

	s, _, err = e.DeleteMatch(s, m.ID)
	require.NoError(t, err)
	_, ok := s.Match(m.ID)
	assert.False(t, ok)
	for _, n := range []int{1, 2} {
		assert.Equal(t, EntryActive, entry(t, s, n).Status)
		assert.Equal(t, 1, entry(t, s, n).CurrentRound)
	}

	s, _, err = e.DeleteMatch(s, bye.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, entry(t, s, 3).CurrentRound)
	assert.Len(t, UnmatchedEntries(s, 1), 3)

	_, _, err = e.DeleteMatch(s, bye.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateMatchStatusAndVisibility(t *testing.T) {
	e := newTestEngine()
	s, _ := register(t, e, NewSnapshot("main"), "Alice", 1)
	s, _ = register(t, e, s, "Bob", 2)
	s, m := pair(t, e, s, 1, 2)

	next, events, err := e.UpdateMatchStatus(s, m.ID, MatchInProgress)
	require.NoError(t, err)
	got, _ := next.Match(m.ID)
	assert.Equal(t, MatchInProgress, got.Status)
	require.Len(t, events, 1)
	assert.Equal(t, EventMatchProgress, events[0].Type)
	assert.Equal(t, s.Entries, next.Entries, "status changes never touch entries")

	next, events, err = e.UpdateMatchStatus(next, m.ID, MatchPending)
	require.NoError(t, err)
	assert.Empty(t, events)

	_, _, err = e.UpdateMatchStatus(s, m.ID, MatchStatus("paused"))
	assert.ErrorIs(t, err, ErrValidation)
	_, _, err = e.UpdateMatchStatus(s, uuid.New(), MatchFinished)
	assert.ErrorIs(t, err, ErrNotFound)

	next, _, err = e.ToggleVisibility(next, m.ID)
	require.NoError(t, err)
	got, _ = next.Match(m.ID)
	assert.True(t, got.IsVisible)
	next, _, err = e.ToggleVisibility(next, m.ID)
	require.NoError(t, err)
	got, _ = next.Match(m.ID)
	assert.False(t, got.IsVisible)

	_, _, err = e.ToggleVisibility(s, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdvanceRound(t *testing.T) {
	e := newTestEngine()
	s, _ := register(t, e, NewSnapshot("main"), "Alice", 1)
	s, _ = register(t, e, s, "Bob", 2)
	s, _ = register(t, e, s, "Carol", 3)

	_, _, err := e.AdvanceRound(s, false)
	require.ErrorIs(t, err, ErrValidation, "nothing played yet")

	s, m := pair(t, e, s, 1, 2)
	_, _, err = e.AdvanceRound(s, false)
	require.ErrorIs(t, err, ErrValidation, "match undecided")

	s, _, err = e.SetWinner(s, m.ID, 1)
	require.NoError(t, err)
	_, _, err = e.AdvanceRound(s, false)
	require.ErrorIs(t, err, ErrValidation, "ticket 3 still in the pool")

	forced, _, err := e.AdvanceRound(s, true)
	require.NoError(t, err)
	assert.Equal(t, 2, forced.CurrentRound)

	s, _, err = e.AssignBye(s, 1)
	require.NoError(t, err)
	s, _, err = e.AdvanceRound(s, false)
	require.NoError(t, err)
	assert.Equal(t, 2, s.CurrentRound)
	assert.Len(t, UnmatchedEntries(s, 2), 2)

	free := newTestEngine(WithAdvancePolicy(AdvanceFree))
	empty, _, err := free.AdvanceRound(NewSnapshot("main"), false)
	require.NoError(t, err)
	assert.Equal(t, 2, empty.CurrentRound)
}

func TestResetCurrentRound(t *testing.T) {
	e := newTestEngine()
	s, _ := register(t, e, NewSnapshot("main"), "Alice", 1)
	s, _ = register(t, e, s, "Bob", 2)
	s, _ = register(t, e, s, "Carol", 3)
	s, _ = register(t, e, s, "Dan", 4)

	s, m1 := pair(t, e, s, 1, 2)
	s, m2 := pair(t, e, s, 3, 4)
	s, _, err := e.SetWinner(s, m1.ID, 1)
	require.NoError(t, err)
	s, _, err = e.SetWinner(s, m2.ID, 3)
	require.NoError(t, err)
	s, _, err = e.AdvanceRound(s, false)
	require.NoError(t, err)

	s, final := pair(t, e, s, 1, 3)
	s, _, err = e.SetWinner(s, final.ID, 3)
	require.NoError(t, err)

	s, _, err = e.ResetCurrentRound(s)
	require.NoError(t, err)

	assert.Equal(t, 2, s.CurrentRound)
	assert.Empty(t, MatchesForRound(s, 2))
	assert.Len(t, MatchesForRound(s, 1), 2)
	for _, n := range []int{1, 3} {
		assert.Equal(t, EntryActive, entry(t, s, n).Status)
		assert.Equal(t, 2, entry(t, s, n).CurrentRound)
	}
	// Round 1 losers stay out
	for _, n := range []int{2, 4} {
		assert.Equal(t, EntryEliminated, entry(t, s, n).Status)
		assert.Equal(t, 1, entry(t, s, n).CurrentRound)
	}
}

func TestResetTournament(t *testing.T) {
	e := newTestEngine()
	s, _ := register(t, e, NewSnapshot("main"), "Alice", 1)
	s, events, err := e.RegisterParticipant(s, "Bob", []int{2})
	require.NoError(t, err)
	s.Events = s.Events.Append(events...)
	s, _, err = e.SetLiveStream(s, " https://youtu.be/dQw4w9WgXcQ ", true)
	require.NoError(t, err)
	s.CurrentRound = 4

	next, _, err := e.ResetTournament(s)
	require.NoError(t, err)
	assert.Empty(t, next.Participants)
	assert.Empty(t, next.Entries)
	assert.Empty(t, next.Matches)
	assert.Equal(t, 1, next.CurrentRound)
	assert.Len(t, next.Events, 1, "the log survives a reset")
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", next.YoutubeLink)
	assert.True(t, next.ShowLive)

	cleared, _, err := e.ClearEvents(next)
	require.NoError(t, err)
	assert.Empty(t, cleared.Events)
	assert.Len(t, next.Events, 1)
}

func TestChampion(t *testing.T) {
	s := NewSnapshot("main")
	_, ok := Champion(s)
	assert.False(t, ok)

	s.Entries = []Entry{{Number: 1, ParticipantName: "A", Status: EntryActive, CurrentRound: 1}}
	name, ok := Champion(s)
	assert.True(t, ok)
	assert.Equal(t, "A", name)

	s.Entries = append(s.Entries,
		Entry{Number: 2, ParticipantName: "B", Status: EntryActive, CurrentRound: 1},
		Entry{Number: 3, ParticipantName: "C", Status: EntryEliminated, CurrentRound: 1},
	)
	_, ok = Champion(s)
	assert.False(t, ok)
}

func TestVisibleMatches(t *testing.T) {
	e := newTestEngine()
	s, _ := register(t, e, NewSnapshot("main"), "Alice", 1)
	s, _ = register(t, e, s, "Bob", 2)
	s, _ = register(t, e, s, "Carol", 3)
	s, _ = register(t, e, s, "Dan", 4)
	s, _ = register(t, e, s, "Eve", 5)
	s, _ = register(t, e, s, "Fay", 6)
	s, _ = register(t, e, s, "Gus", 7)
	s, _ = register(t, e, s, "Hal", 8)

	s, done := pair(t, e, s, 1, 2)
	s, older := pair(t, e, s, 3, 4)
	s, newer := pair(t, e, s, 5, 6)
	s, hidden := pair(t, e, s, 7, 8)

	var err error
	s, _, err = e.SetWinner(s, done.ID, 1)
	require.NoError(t, err)
	s, _, err = e.UpdateMatchStatus(s, newer.ID, MatchInProgress)
	require.NoError(t, err)
	for _, id := range []uuid.UUID{done.ID, older.ID, newer.ID} {
		s, _, err = e.ToggleVisibility(s, id)
		require.NoError(t, err)
	}

	visible := VisibleMatches(s, 1)
	require.Len(t, visible, 3)
	assert.Equal(t, newer.ID, visible[0].ID)
	assert.Equal(t, older.ID, visible[1].ID)
	assert.Equal(t, done.ID, visible[2].ID)
	for _, m := range visible {
		assert.NotEqual(t, hidden.ID, m.ID)
	}
}
