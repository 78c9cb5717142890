package views

import (
	"context"
	"html/template"
	"time"

	"github.com/AdamBeresnev/sinuca-bracket/internal/bracket"
	"github.com/AdamBeresnev/sinuca-bracket/internal/middleware"
	users "github.com/AdamBeresnev/sinuca-bracket/internal/user"
)

func GetAdmin(ctx context.Context) *users.Admin {
	return middleware.GetAdmin(ctx)
}

var funcs = template.FuncMap{
	"clock": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("15:04")
	},
}

var statusLabels = map[bracket.MatchStatus]string{
	bracket.MatchPending:    "Aguardando",
	bracket.MatchInProgress: "Na mesa",
	bracket.MatchFinished:   "Finalizada",
}

func statusLabel(st bracket.MatchStatus) string {
	if l, ok := statusLabels[st]; ok {
		return l
	}
	return string(st)
}
