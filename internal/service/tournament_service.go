package service

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/AdamBeresnev/sinuca-bracket/internal/bracket"
	"github.com/AdamBeresnev/sinuca-bracket/internal/metrics"
	"github.com/AdamBeresnev/sinuca-bracket/internal/middleware"
	"github.com/AdamBeresnev/sinuca-bracket/internal/realtime"
	"github.com/AdamBeresnev/sinuca-bracket/internal/store"
	"github.com/AdamBeresnev/sinuca-bracket/internal/video"
)

var ErrForbidden = errors.New("admin login required")

// Publisher delivers persisted changes to the subscribers of a tournament.
type Publisher interface {
	Publish(room, msgType string, payload any)
}

type TournamentService struct {
	store     *store.TournamentStore
	engine    *bracket.Engine
	publisher Publisher
	defaultID string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewTournamentService(store *store.TournamentStore, engine *bracket.Engine, publisher Publisher, defaultID string) *TournamentService {
	if defaultID == "" {
		defaultID = bracket.DefaultTournamentID
	}
	return &TournamentService{
		store:     store,
		engine:    engine,
		publisher: publisher,
		defaultID: defaultID,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (s *TournamentService) DefaultID() string {
	return s.defaultID
}

func (s *TournamentService) lock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

type command func(bracket.Snapshot) (bracket.Snapshot, []bracket.Event, error)

// apply runs one engine command against the stored snapshot, appends its
// events to the log, saves, and only then tells the subscribers.
func (s *TournamentService) apply(ctx context.Context, id, name string, cmd command) (bracket.Snapshot, error) {
	if !middleware.IsAdmin(ctx) {
		metrics.Commands.WithLabelValues(name, "forbidden").Inc()
		return bracket.Snapshot{}, ErrForbidden
	}
	if id == "" {
		id = s.defaultID
	}

	l := s.lock(id)
	l.Lock()
	defer l.Unlock()

	current, err := s.store.GetTournament(ctx, id)
	if err != nil {
		metrics.Commands.WithLabelValues(name, "error").Inc()
		return bracket.Snapshot{}, err
	}

	next, events, err := cmd(current)
	if err != nil {
		metrics.Commands.WithLabelValues(name, "rejected").Inc()
		return current, err
	}
	next.Events = next.Events.Append(events...)

	saved, err := s.store.SaveTournament(ctx, next, current.Version)
	if err != nil {
		if errors.Is(err, store.ErrVersionConflict) {
			metrics.VersionConflicts.Inc()
		}
		metrics.Commands.WithLabelValues(name, "error").Inc()
		return current, err
	}
	metrics.Commands.WithLabelValues(name, "ok").Inc()

	s.publisher.Publish(id, realtime.TypeSnapshot, saved)
	if len(events) > 0 {
		s.publisher.Publish(id, realtime.TypeEvents, events)
	}
	return saved, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, id string) (bracket.Snapshot, error) {
	if id == "" {
		id = s.defaultID
	}
	return s.store.GetTournament(ctx, id)
}

// ListTournaments returns every stored season plus the default one, which
// exists even before its first save.
func (s *TournamentService) ListTournaments(ctx context.Context) ([]string, error) {
	ids, err := s.store.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(ids, s.defaultID) {
		ids = append([]string{s.defaultID}, ids...)
	}
	return ids, nil
}

type TournamentData struct {
	Snapshot bracket.Snapshot
	Round    int
	Rounds   []int

	Champion    string
	HasChampion bool

	Pool    []bracket.Entry
	Active  []bracket.Entry
	Matches []bracket.Match
	Visible []bracket.Match

	// AdvanceBlocker explains why the round cannot be closed yet, empty when it can.
	AdvanceBlocker string
	AdvancePolicy  bracket.AdvancePolicy

	Live video.EmbedInfo
}

// GetTournamentData gathers what both pages render. round 0 or an unknown
// round means the current one.
func (s *TournamentService) GetTournamentData(ctx context.Context, id string, round int) (*TournamentData, error) {
	snap, err := s.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if round < 1 || round > snap.CurrentRound {
		round = snap.CurrentRound
	}

	data := &TournamentData{
		Snapshot:      snap,
		Round:         round,
		Rounds:        bracket.Rounds(snap),
		Pool:          bracket.UnmatchedEntries(snap, snap.CurrentRound),
		Active:        bracket.ActiveEntries(snap),
		Matches:       bracket.MatchesForRound(snap, round),
		Visible:       bracket.VisibleMatches(snap, round),
		AdvancePolicy: s.engine.AdvancePolicy(),
	}
	data.Champion, data.HasChampion = bracket.Champion(snap)
	if err := bracket.RoundComplete(snap); err != nil {
		data.AdvanceBlocker = err.Error()
	}
	if snap.ShowLive {
		data.Live = video.GetEmbedInfo(snap.YoutubeLink)
	}
	return data, nil
}

func (s *TournamentService) AdvanceRound(ctx context.Context, id string, force bool) (bracket.Snapshot, error) {
	return s.apply(ctx, id, "advance_round", func(snap bracket.Snapshot) (bracket.Snapshot, []bracket.Event, error) {
		return s.engine.AdvanceRound(snap, force)
	})
}

func (s *TournamentService) ResetCurrentRound(ctx context.Context, id string) (bracket.Snapshot, error) {
	return s.apply(ctx, id, "reset_round", s.engine.ResetCurrentRound)
}

func (s *TournamentService) ResetTournament(ctx context.Context, id string) (bracket.Snapshot, error) {
	return s.apply(ctx, id, "reset_tournament", s.engine.ResetTournament)
}

func (s *TournamentService) ClearEvents(ctx context.Context, id string) (bracket.Snapshot, error) {
	return s.apply(ctx, id, "clear_events", s.engine.ClearEvents)
}

func (s *TournamentService) SetLiveStream(ctx context.Context, id, link string, show bool) (bracket.Snapshot, error) {
	return s.apply(ctx, id, "set_live_stream", func(snap bracket.Snapshot) (bracket.Snapshot, []bracket.Event, error) {
		return s.engine.SetLiveStream(snap, link, show)
	})
}
