package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/AdamBeresnev/sinuca-bracket/internal/bracket"
	"github.com/AdamBeresnev/sinuca-bracket/internal/config"
	"github.com/AdamBeresnev/sinuca-bracket/internal/httputil"
	"github.com/AdamBeresnev/sinuca-bracket/internal/middleware"
	"github.com/AdamBeresnev/sinuca-bracket/internal/realtime"
	"github.com/AdamBeresnev/sinuca-bracket/internal/service"
	"github.com/AdamBeresnev/sinuca-bracket/views"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/markbates/goth/gothic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

type application struct {
	cfg         *config.Config
	sessions    *scs.SessionManager
	auth        *middleware.Authenticator
	providers   []string
	tournaments *service.TournamentService
	hub         *realtime.Hub
}

func newRouter(app *application) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	// outside the session middleware, its response writer cannot be hijacked
	r.Get("/ws/tournaments/{id}", app.subscribe)

	r.Group(func(r chi.Router) {
		r.Use(app.sessions.LoadAndSave)
		r.Use(app.auth.LoadAdmin)
		app.sessionRoutes(r)
	})

	return r
}

func (app *application) sessionRoutes(r chi.Router) {
	r.Get("/", app.visitorPage)

	r.Get("/login", func(w http.ResponseWriter, r *http.Request) {
		if middleware.IsAdmin(r.Context()) {
			http.Redirect(w, r, "/admin", http.StatusFound)
			return
		}
		views.Render(w, r, views.LoginPage(app.loginData("")))
	})

	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}
		if err := app.auth.LoginWithPassphrase(r.Context(), r.Form.Get("passphrase")); err != nil {
			if errors.Is(err, middleware.ErrInvalidPassphrase) {
				w.WriteHeader(http.StatusUnauthorized)
				views.Render(w, r, views.LoginPage(app.loginData(err.Error())))
				return
			}
			httputil.InternalServerError(w, "Failed to log in", err)
			return
		}
		http.Redirect(w, r, "/admin", http.StatusFound)
	})

	r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
		if err := app.auth.Logout(r.Context()); err != nil {
			httputil.InternalServerError(w, "Failed to log out", err)
			return
		}
		if r.Header.Get("HX-Request") != "" {
			w.Header().Set("HX-Redirect", "/")
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	})

	r.Get("/auth/{provider}", func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		if !slices.Contains(app.providers, provider) {
			httputil.NotFound(w, "Unknown login provider", nil)
			return
		}
		r = r.WithContext(context.WithValue(r.Context(), "provider", provider))

		gothic.BeginAuthHandler(w, r)
	})

	r.Get("/auth/{provider}/callback", func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		if !slices.Contains(app.providers, provider) {
			httputil.NotFound(w, "Unknown login provider", nil)
			return
		}
		r = r.WithContext(context.WithValue(r.Context(), "provider", provider))

		gothUser, err := gothic.CompleteUserAuth(w, r)
		if err != nil {
			httputil.BadRequest(w, "Authentication failure", err)
			return
		}

		if err := app.auth.LoginWithProvider(r.Context(), gothUser); err != nil {
			if errors.Is(err, middleware.ErrNotAdmin) {
				httputil.Forbidden(w, err.Error())
				return
			}
			httputil.InternalServerError(w, "Failed to log in", err)
			return
		}
		http.Redirect(w, r, "/admin", http.StatusFound)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/admin", app.adminPage)
	})

	r.Route("/api", func(r chi.Router) {
		if len(app.cfg.CORSOrigins) > 0 {
			r.Use(cors.New(cors.Options{
				AllowedOrigins:   app.cfg.CORSOrigins,
				AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
				AllowedHeaders:   []string{"*"},
				AllowCredentials: true,
			}).Handler)
		}

		r.Get("/tournaments", func(w http.ResponseWriter, r *http.Request) {
			ids, err := app.tournaments.ListTournaments(r.Context())
			if err != nil {
				httputil.InternalServerError(w, "Failed to list tournaments", err)
				return
			}
			writeJSON(w, ids)
		})

		r.Get("/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
			snap, err := app.tournaments.GetTournament(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				httputil.InternalServerError(w, "Failed to get tournament", err)
				return
			}
			writeJSON(w, snap)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			app.commandRoutes(r)
		})
	})
}

func (app *application) commandRoutes(r chi.Router) {
	svc := app.tournaments

	r.Post("/tournaments/{id}/participants", app.command("register participant", func(r *http.Request, id string) (bracket.Snapshot, error) {
		return svc.RegisterParticipant(r.Context(), id, r.Form.Get("name"), r.Form.Get("tickets"))
	}))

	r.Patch("/tournaments/{id}/participants/{pid}", app.command("edit participant", func(r *http.Request, id string) (bracket.Snapshot, error) {
		pid, err := urlUUID(r, "pid")
		if err != nil {
			return bracket.Snapshot{}, err
		}
		return svc.EditParticipant(r.Context(), id, pid, r.Form.Get("name"))
	}))

	r.Delete("/tournaments/{id}/participants/{pid}", app.command("remove participant", func(r *http.Request, id string) (bracket.Snapshot, error) {
		pid, err := urlUUID(r, "pid")
		if err != nil {
			return bracket.Snapshot{}, err
		}
		return svc.RemoveParticipant(r.Context(), id, pid)
	}))

	r.Post("/tournaments/{id}/matches", app.command("create match", func(r *http.Request, id string) (bracket.Snapshot, error) {
		round, err := formInt(r, "round")
		if err != nil {
			return bracket.Snapshot{}, err
		}
		entry1, err := formInt(r, "entry1")
		if err != nil {
			return bracket.Snapshot{}, err
		}
		entry2, err := formInt(r, "entry2")
		if err != nil {
			return bracket.Snapshot{}, err
		}
		return svc.CreateMatch(r.Context(), id, round, entry1, entry2)
	}))

	r.Post("/tournaments/{id}/byes", app.command("assign bye", func(r *http.Request, id string) (bracket.Snapshot, error) {
		round, err := formInt(r, "round")
		if err != nil {
			return bracket.Snapshot{}, err
		}
		return svc.AssignBye(r.Context(), id, round)
	}))

	r.Post("/tournaments/{id}/matches/{mid}/winner", app.command("set winner", func(r *http.Request, id string) (bracket.Snapshot, error) {
		mid, err := urlUUID(r, "mid")
		if err != nil {
			return bracket.Snapshot{}, err
		}
		winner, err := formInt(r, "winner")
		if err != nil {
			return bracket.Snapshot{}, err
		}
		return svc.SetWinner(r.Context(), id, mid, winner)
	}))

	r.Post("/tournaments/{id}/matches/{mid}/reset", app.command("reset match", func(r *http.Request, id string) (bracket.Snapshot, error) {
		mid, err := urlUUID(r, "mid")
		if err != nil {
			return bracket.Snapshot{}, err
		}
		return svc.ResetMatch(r.Context(), id, mid)
	}))

	r.Post("/tournaments/{id}/matches/{mid}/status", app.command("update match status", func(r *http.Request, id string) (bracket.Snapshot, error) {
		mid, err := urlUUID(r, "mid")
		if err != nil {
			return bracket.Snapshot{}, err
		}
		return svc.UpdateMatchStatus(r.Context(), id, mid, bracket.MatchStatus(r.Form.Get("status")))
	}))

	r.Post("/tournaments/{id}/matches/{mid}/visibility", app.command("toggle visibility", func(r *http.Request, id string) (bracket.Snapshot, error) {
		mid, err := urlUUID(r, "mid")
		if err != nil {
			return bracket.Snapshot{}, err
		}
		return svc.ToggleVisibility(r.Context(), id, mid)
	}))

	r.Delete("/tournaments/{id}/matches/{mid}", app.command("delete match", func(r *http.Request, id string) (bracket.Snapshot, error) {
		mid, err := urlUUID(r, "mid")
		if err != nil {
			return bracket.Snapshot{}, err
		}
		return svc.DeleteMatch(r.Context(), id, mid)
	}))

	r.Post("/tournaments/{id}/round/advance", app.command("advance round", func(r *http.Request, id string) (bracket.Snapshot, error) {
		force, _ := strconv.ParseBool(r.Form.Get("force"))
		return svc.AdvanceRound(r.Context(), id, force)
	}))

	r.Post("/tournaments/{id}/round/reset", app.command("reset round", func(r *http.Request, id string) (bracket.Snapshot, error) {
		return svc.ResetCurrentRound(r.Context(), id)
	}))

	r.Post("/tournaments/{id}/reset", app.command("reset tournament", func(r *http.Request, id string) (bracket.Snapshot, error) {
		return svc.ResetTournament(r.Context(), id)
	}))

	r.Delete("/tournaments/{id}/events", app.command("clear events", func(r *http.Request, id string) (bracket.Snapshot, error) {
		return svc.ClearEvents(r.Context(), id)
	}))

	r.Post("/tournaments/{id}/live", app.command("set live stream", func(r *http.Request, id string) (bracket.Snapshot, error) {
		show, _ := strconv.ParseBool(r.Form.Get("show_live"))
		return svc.SetLiveStream(r.Context(), id, r.Form.Get("youtube_link"), show)
	}))
}

type commandFunc func(r *http.Request, id string) (bracket.Snapshot, error)

// command parses the form, runs fn and answers with the saved snapshot.
// htmx callers get a page refresh instead.
func (app *application) command(name string, fn commandFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}
		snap, err := fn(r, chi.URLParam(r, "id"))
		if err != nil {
			httputil.FromError(w, "Failed to "+name, err)
			return
		}
		if r.Header.Get("HX-Request") != "" {
			w.Header().Set("HX-Refresh", "true")
		}
		writeJSON(w, snap)
	}
}

func (app *application) visitorPage(w http.ResponseWriter, r *http.Request) {
	data, seasons, err := app.pageData(r)
	if err != nil {
		httputil.InternalServerError(w, "Failed to get tournament", err)
		return
	}
	views.Render(w, r, views.Index(views.PrepareBracketData(data, nil, seasons)))
}

func (app *application) adminPage(w http.ResponseWriter, r *http.Request) {
	data, seasons, err := app.pageData(r)
	if err != nil {
		httputil.InternalServerError(w, "Failed to get tournament", err)
		return
	}
	views.Render(w, r, views.AdminPage(views.PrepareBracketData(data, views.GetAdmin(r.Context()), seasons)))
}

// pageData reads ?season= and ?round=, both optional.
func (app *application) pageData(r *http.Request) (*service.TournamentData, []string, error) {
	round, _ := strconv.Atoi(r.URL.Query().Get("round"))
	data, err := app.tournaments.GetTournamentData(r.Context(), r.URL.Query().Get("season"), round)
	if err != nil {
		return nil, nil, err
	}
	seasons, err := app.tournaments.ListTournaments(r.Context())
	if err != nil {
		return nil, nil, err
	}
	return data, seasons, nil
}

func (app *application) subscribe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := app.tournaments.GetTournament(r.Context(), id)
	if err != nil {
		httputil.InternalServerError(w, "Failed to get tournament", err)
		return
	}
	app.hub.ServeWS(w, r, snap.ID, &realtime.Message{Type: realtime.TypeSnapshot, Payload: snap})
}

func (app *application) loginData(errMsg string) views.LoginData {
	return views.LoginData{
		Providers:  app.providers,
		Passphrase: app.auth.PassphraseEnabled(),
		Error:      errMsg,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		httputil.InternalServerError(w, "Failed to encode response", err)
	}
}

func formInt(r *http.Request, key string) (int, error) {
	n, err := strconv.Atoi(r.Form.Get(key))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", bracket.ErrValidation, key)
	}
	return n, nil
}

func urlUUID(r *http.Request, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, key))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id %q", bracket.ErrValidation, chi.URLParam(r, key))
	}
	return id, nil
}
