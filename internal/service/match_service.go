package service

import (
	"context"

	"github.com/AdamBeresnev/sinuca-bracket/internal/bracket"
	"github.com/google/uuid"
)

func (s *TournamentService) CreateMatch(ctx context.Context, id string, round, entry1, entry2 int) (bracket.Snapshot, error) {
	return s.apply(ctx, id, "create_match", func(snap bracket.Snapshot) (bracket.Snapshot, []bracket.Event, error) {
		return s.engine.CreateMatch(snap, round, entry1, entry2)
	})
}

func (s *TournamentService) AssignBye(ctx context.Context, id string, round int) (bracket.Snapshot, error) {
	return s.apply(ctx, id, "assign_bye", func(snap bracket.Snapshot) (bracket.Snapshot, []bracket.Event, error) {
		return s.engine.AssignBye(snap, round)
	})
}

func (s *TournamentService) SetWinner(ctx context.Context, id string, matchID uuid.UUID, winner int) (bracket.Snapshot, error) {
	return s.apply(ctx, id, "set_winner", func(snap bracket.Snapshot) (bracket.Snapshot, []bracket.Event, error) {
		return s.engine.SetWinner(snap, matchID, winner)
	})
}

func (s *TournamentService) ResetMatch(ctx context.Context, id string, matchID uuid.UUID) (bracket.Snapshot, error) {
	return s.apply(ctx, id, "reset_match", func(snap bracket.Snapshot) (bracket.Snapshot, []bracket.Event, error) {
		return s.engine.ResetMatch(snap, matchID)
	})
}

func (s *TournamentService) DeleteMatch(ctx context.Context, id string, matchID uuid.UUID) (bracket.Snapshot, error) {
	return s.apply(ctx, id, "delete_match", func(snap bracket.Snapshot) (bracket.Snapshot, []bracket.Event, error) {
		return s.engine.DeleteMatch(snap, matchID)
	})
}

func (s *TournamentService) UpdateMatchStatus(ctx context.Context, id string, matchID uuid.UUID, status bracket.MatchStatus) (bracket.Snapshot, error) {
	return s.apply(ctx, id, "update_match_status", func(snap bracket.Snapshot) (bracket.Snapshot, []bracket.Event, error) {
		return s.engine.UpdateMatchStatus(snap, matchID, status)
	})
}

func (s *TournamentService) ToggleVisibility(ctx context.Context, id string, matchID uuid.UUID) (bracket.Snapshot, error) {
	return s.apply(ctx, id, "toggle_visibility", func(snap bracket.Snapshot) (bracket.Snapshot, []bracket.Event, error) {
		return s.engine.ToggleVisibility(snap, matchID)
	})
}
