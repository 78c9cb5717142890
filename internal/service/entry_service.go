package service

import (
	"context"

	"github.com/AdamBeresnev/sinuca-bracket/internal/bracket"
	"github.com/google/uuid"
)

// RegisterParticipant takes the tickets the way the operator types them, e.g. "7, #12 150".
func (s *TournamentService) RegisterParticipant(ctx context.Context, id, name, tickets string) (bracket.Snapshot, error) {
	return s.apply(ctx, id, "register_participant", func(snap bracket.Snapshot) (bracket.Snapshot, []bracket.Event, error) {
		numbers, err := bracket.ParseTickets(tickets)
		if err != nil {
			return snap, nil, err
		}
		return s.engine.RegisterParticipant(snap, name, numbers)
	})
}

func (s *TournamentService) RemoveParticipant(ctx context.Context, id string, participantID uuid.UUID) (bracket.Snapshot, error) {
	return s.apply(ctx, id, "remove_participant", func(snap bracket.Snapshot) (bracket.Snapshot, []bracket.Event, error) {
		return s.engine.RemoveParticipant(snap, participantID)
	})
}

func (s *TournamentService) EditParticipant(ctx context.Context, id string, participantID uuid.UUID, name string) (bracket.Snapshot, error) {
	return s.apply(ctx, id, "edit_participant", func(snap bracket.Snapshot) (bracket.Snapshot, []bracket.Event, error) {
		return s.engine.EditParticipant(snap, participantID, name)
	})
}
