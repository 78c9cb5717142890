package views

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/AdamBeresnev/sinuca-bracket/internal/bracket"
	"github.com/AdamBeresnev/sinuca-bracket/internal/service"
	users "github.com/AdamBeresnev/sinuca-bracket/internal/user"
	"github.com/google/uuid"
)

type RoundTab struct {
	Href     string
	Round    int
	Selected bool
	Current  bool
	Played   int
	Total    int
}

type Side struct {
	Ticket string
	Number int
	Name   string
	Won    bool
	Lost   bool
	Empty  bool
}

type MatchRow struct {
	ID          uuid.UUID
	Round       int
	Side1       Side
	Side2       Side
	IsBye       bool
	Status      bracket.MatchStatus
	StatusLabel string
	Visible     bool
	Decided     bool
	Time        string
}

type Stats struct {
	Participants int
	Tickets      int
	Active       int
	Round        int
}

type ParticipantRow struct {
	ID      uuid.UUID
	Name    string
	Tickets []Side
}

type BracketData struct {
	ID       string
	Version  int64
	Round    int
	Current  int
	Tabs     []RoundTab
	Rows     []MatchRow
	Pool     []Side
	Active   []Side
	Roster   []ParticipantRow
	Stats    Stats
	Champion string
	Blocker  string
	Gated    bool
	Live     string
	LiveLink string
	ShowLive bool
	Events   []bracket.Event
	Seasons  []string
	Admin    *users.Admin
}

// PrepareBracketData turns the service data into rows the templates can print
// without further lookups. Visitors only get the validated matches.
func PrepareBracketData(data *service.TournamentData, admin *users.Admin, seasons []string) BracketData {
	snap := data.Snapshot
	bd := BracketData{
		ID:       snap.ID,
		Version:  snap.Version,
		Round:    data.Round,
		Current:  snap.CurrentRound,
		Champion: data.Champion,
		Blocker:  data.AdvanceBlocker,
		Gated:    data.AdvancePolicy == bracket.AdvanceGated,
		LiveLink: snap.YoutubeLink,
		ShowLive: snap.ShowLive,
		Events:   snap.Events,
		Seasons:  seasons,
		Admin:    admin,
		Stats: Stats{
			Participants: len(snap.Participants),
			Tickets:      len(snap.Entries),
			Active:       len(data.Active),
			Round:        snap.CurrentRound,
		},
	}
	if data.Live.Embeddable() {
		bd.Live = data.Live.URL
	}
	page := "/?"
	if admin != nil {
		page = "/admin?"
	}
	if snap.ID != bracket.DefaultTournamentID {
		page += "season=" + url.QueryEscape(snap.ID) + "&"
	}

	for _, r := range data.Rounds {
		tab := RoundTab{
			Href:     fmt.Sprintf("%sround=%d", page, r),
			Round:    r,
			Selected: r == data.Round,
			Current:  r == snap.CurrentRound,
		}
		for _, m := range bracket.MatchesForRound(snap, r) {
			if admin == nil && !m.IsVisible {
				continue
			}
			tab.Total++
			if m.Decided() {
				tab.Played++
			}
		}
		bd.Tabs = append(bd.Tabs, tab)
	}

	matches := data.Visible
	if admin != nil {
		matches = data.Matches
	}
	for _, m := range matches {
		bd.Rows = append(bd.Rows, matchRow(snap, m))
	}

	for _, en := range data.Pool {
		bd.Pool = append(bd.Pool, entrySide(en))
	}
	for _, en := range data.Active {
		bd.Active = append(bd.Active, entrySide(en))
	}

	bd.Roster = roster(snap)
	return bd
}

func matchRow(snap bracket.Snapshot, m bracket.Match) MatchRow {
	row := MatchRow{
		ID:          m.ID,
		Round:       m.Round,
		IsBye:       m.IsBye,
		Status:      m.Status,
		StatusLabel: statusLabel(m.Status),
		Visible:     m.IsVisible,
		Decided:     m.Decided(),
		Side1:       matchSide(snap, m, m.Entry1),
		Side2:       matchSide(snap, m, m.Entry2),
	}
	if !m.Timestamp.IsZero() {
		row.Time = m.Timestamp.Local().Format("15:04")
	}
	return row
}

func matchSide(snap bracket.Snapshot, m bracket.Match, number *int) Side {
	if number == nil {
		return Side{Name: bracket.EntryName(snap, nil), Empty: true}
	}
	return Side{
		Ticket: bracket.TicketLabel(*number),
		Number: *number,
		Name:   bracket.EntryName(snap, number),
		Won:    m.IsWinner(*number),
		Lost:   m.IsLoser(*number),
	}
}

func entrySide(en bracket.Entry) Side {
	return Side{Ticket: bracket.TicketLabel(en.Number), Number: en.Number, Name: en.ParticipantName}
}

func roster(snap bracket.Snapshot) []ParticipantRow {
	rows := make([]ParticipantRow, 0, len(snap.Participants))
	for _, p := range snap.Participants {
		row := ParticipantRow{ID: p.ID, Name: p.Name}
		for _, n := range p.EntryNumbers {
			side := Side{Ticket: bracket.TicketLabel(n), Number: n, Name: p.Name}
			if en, ok := snap.Entry(n); ok && !en.IsActive() {
				side.Lost = true
			}
			row.Tickets = append(row.Tickets, side)
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

func (t RoundTab) Label() string {
	return fmt.Sprintf("Round %d", t.Round)
}
