package store

import (
	"context"
	"testing"
	"time"

	"github.com/AdamBeresnev/sinuca-bracket/internal/bracket"
	"github.com/AdamBeresnev/sinuca-bracket/internal/db"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	// every connection would get its own empty in-memory database
	database.SetMaxOpenConns(1)

	err = db.RunMigrations(database.DB, "sqlite3", "file://../../migrations/sqlite3")
	require.NoError(t, err, "Failed to apply migrations")

	t.Cleanup(func() { database.Close() })
	return database
}

func seededSnapshot(t *testing.T) bracket.Snapshot {
	t.Helper()
	e := bracket.NewEngine()
	s := bracket.NewSnapshot("season-1")

	s, _, err := e.RegisterParticipant(s, "Alice", []int{1, 2})
	require.NoError(t, err)
	s, _, err = e.RegisterParticipant(s, "Bob", []int{3})
	require.NoError(t, err)
	s, _, err = e.CreateMatch(s, 1, 1, 3)
	require.NoError(t, err)
	s, _, err = e.SetLiveStream(s, "https://youtu.be/dQw4w9WgXcQ", true)
	require.NoError(t, err)
	return s
}

func TestGetTournamentMissing(t *testing.T) {
	store := NewTournamentStore(setupTestDB(t))

	snap, err := store.GetTournament(context.Background(), "nope")
	require.NoError(t, err)

	assert.Equal(t, "nope", snap.ID)
	assert.Equal(t, 1, snap.CurrentRound)
	assert.Equal(t, int64(0), snap.Version)
	assert.Empty(t, snap.Participants)
	assert.NotNil(t, snap.Matches)
}

func TestSaveAndGetTournament(t *testing.T) {
	store := NewTournamentStore(setupTestDB(t))
	ctx := context.Background()
	snap := seededSnapshot(t)

	saved, err := store.SaveTournament(ctx, snap, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.Version)
	assert.False(t, saved.LastUpdate.IsZero())

	fetched, err := store.GetTournament(ctx, "season-1")
	require.NoError(t, err)

	assert.Equal(t, saved.Version, fetched.Version)
	assert.Equal(t, snap.Participants, fetched.Participants)
	assert.Equal(t, snap.Entries, fetched.Entries)
	require.Len(t, fetched.Matches, 1)
	assert.Equal(t, snap.Matches[0].ID, fetched.Matches[0].ID)
	assert.Equal(t, *snap.Matches[0].Entry1, *fetched.Matches[0].Entry1)
	assert.Nil(t, fetched.Matches[0].Winner)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", fetched.YoutubeLink)
	assert.True(t, fetched.ShowLive)
	require.Len(t, fetched.Events, len(snap.Events))
	assert.WithinDuration(t, saved.LastUpdate, fetched.LastUpdate, time.Second)
}

func TestSaveTournamentVersionConflict(t *testing.T) {
	store := NewTournamentStore(setupTestDB(t))
	ctx := context.Background()
	snap := seededSnapshot(t)

	_, err := store.SaveTournament(ctx, snap, 0)
	require.NoError(t, err)

	// a second writer that also started from version 0
	_, err = store.SaveTournament(ctx, snap, 0)
	assert.ErrorIs(t, err, ErrVersionConflict)

	first, err := store.GetTournament(ctx, snap.ID)
	require.NoError(t, err)

	first.CurrentRound = 2
	second, err := store.SaveTournament(ctx, first, first.Version)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Version)

	// stale write based on version 1
	_, err = store.SaveTournament(ctx, first, 1)
	assert.ErrorIs(t, err, ErrVersionConflict)

	fetched, err := store.GetTournament(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.CurrentRound)
	assert.Equal(t, int64(2), fetched.Version)
}

func TestListAndDeleteTournaments(t *testing.T) {
	store := NewTournamentStore(setupTestDB(t))
	ctx := context.Background()

	ids, err := store.ListTournaments(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, id := range []string{"b", "a"} {
		_, err := store.SaveTournament(ctx, bracket.NewSnapshot(id), 0)
		require.NoError(t, err)
	}

	ids, err = store.ListTournaments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	require.NoError(t, store.DeleteTournament(ctx, "a"))

	ids, err = store.ListTournaments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)

	snap, err := store.GetTournament(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(0), snap.Version)
}
