package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AdamBeresnev/sinuca-bracket/internal/bracket"
	"github.com/jmoiron/sqlx"
)

// ErrVersionConflict means somebody else saved the tournament since it was loaded.
var ErrVersionConflict = errors.New("tournament was changed by someone else, reload and try again")

type TournamentStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// tournamentRow is the persisted shape of a snapshot: one row per tournament
// or season, collections stored as JSON text.
type tournamentRow struct {
	ID           string    `db:"id"`
	Participants string    `db:"participants"`
	Entries      string    `db:"entries"`
	Matches      string    `db:"matches"`
	CurrentRound int       `db:"current_round"`
	YoutubeLink  string    `db:"youtube_link"`
	ShowLive     bool      `db:"show_live"`
	Events       string    `db:"events"`
	LastUpdate   time.Time `db:"last_update"`
	Version      int64     `db:"version"`
}

type saveArgs struct {
	tournamentRow
	ExpectedVersion int64 `db:"expected_version"`
}

const (
	getTournamentQuery    = "SELECT * FROM tournaments WHERE id = ?"
	listTournamentsQuery  = "SELECT id FROM tournaments ORDER BY id ASC"
	deleteTournamentQuery = "DELETE FROM tournaments WHERE id = ?"
	insertTournamentQuery = `
		INSERT INTO tournaments (id, participants, entries, matches, current_round, youtube_link, show_live, events, last_update, version)
		VALUES (:id, :participants, :entries, :matches, :current_round, :youtube_link, :show_live, :events, :last_update, :version)
		ON CONFLICT (id) DO NOTHING
	`
	updateTournamentQuery = `
		UPDATE tournaments SET
		participants = :participants,
		entries = :entries,
		matches = :matches,
		current_round = :current_round,
		youtube_link = :youtube_link,
		show_live = :show_live,
		events = :events,
		last_update = :last_update,
		version = :version
		WHERE id = :id AND version = :expected_version
	`
)

// GetTournament loads a snapshot. A tournament that was never saved comes
// back as an empty round 1 snapshot with version 0.
func (s *TournamentStore) GetTournament(ctx context.Context, id string) (bracket.Snapshot, error) {
	var row tournamentRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(getTournamentQuery), id)
	if errors.Is(err, sql.ErrNoRows) {
		return bracket.NewSnapshot(id), nil
	}
	if err != nil {
		return bracket.Snapshot{}, err
	}
	return row.snapshot()
}

// SaveTournament writes the whole snapshot if the stored version still equals
// expectedVersion and returns the snapshot with its new version.
func (s *TournamentStore) SaveTournament(ctx context.Context, snap bracket.Snapshot, expectedVersion int64) (bracket.Snapshot, error) {
	snap.Version = expectedVersion + 1
	snap.LastUpdate = s.now()

	row, err := newTournamentRow(snap)
	if err != nil {
		return bracket.Snapshot{}, err
	}

	query := updateTournamentQuery
	if expectedVersion == 0 {
		query = insertTournamentQuery
	}
	res, err := s.db.NamedExecContext(ctx, query, saveArgs{tournamentRow: row, ExpectedVersion: expectedVersion})
	if err != nil {
		return bracket.Snapshot{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return bracket.Snapshot{}, err
	}
	if n == 0 {
		return bracket.Snapshot{}, ErrVersionConflict
	}
	return snap, nil
}

func (s *TournamentStore) ListTournaments(ctx context.Context) ([]string, error) {
	ids := []string{}
	err := s.db.SelectContext(ctx, &ids, listTournamentsQuery)
	return ids, err
}

func (s *TournamentStore) DeleteTournament(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(deleteTournamentQuery), id)
	return err
}

func newTournamentRow(snap bracket.Snapshot) (tournamentRow, error) {
	row := tournamentRow{
		ID:           snap.ID,
		CurrentRound: snap.CurrentRound,
		YoutubeLink:  snap.YoutubeLink,
		ShowLive:     snap.ShowLive,
		LastUpdate:   snap.LastUpdate,
		Version:      snap.Version,
	}
	fields := []struct {
		dst *string
		v   any
	}{
		{&row.Participants, nonNil(snap.Participants)},
		{&row.Entries, nonNil(snap.Entries)},
		{&row.Matches, nonNil(snap.Matches)},
		{&row.Events, nonNil(snap.Events)},
	}
	for _, f := range fields {
		b, err := json.Marshal(f.v)
		if err != nil {
			return row, fmt.Errorf("failed to encode tournament %s: %w", snap.ID, err)
		}
		*f.dst = string(b)
	}
	return row, nil
}

func (r tournamentRow) snapshot() (bracket.Snapshot, error) {
	snap := bracket.NewSnapshot(r.ID)
	snap.CurrentRound = max(r.CurrentRound, 1)
	snap.YoutubeLink = r.YoutubeLink
	snap.ShowLive = r.ShowLive
	snap.LastUpdate = r.LastUpdate.UTC()
	snap.Version = r.Version

	fields := []struct {
		src string
		dst any
	}{
		{r.Participants, &snap.Participants},
		{r.Entries, &snap.Entries},
		{r.Matches, &snap.Matches},
		{r.Events, &snap.Events},
	}
	for _, f := range fields {
		if f.src == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.src), f.dst); err != nil {
			return bracket.Snapshot{}, fmt.Errorf("failed to decode tournament %s: %w", r.ID, err)
		}
	}
	return snap.Clone(), nil
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
