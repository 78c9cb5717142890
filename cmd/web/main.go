package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdamBeresnev/sinuca-bracket/internal/bracket"
	"github.com/AdamBeresnev/sinuca-bracket/internal/config"
	"github.com/AdamBeresnev/sinuca-bracket/internal/db"
	"github.com/AdamBeresnev/sinuca-bracket/internal/metrics"
	"github.com/AdamBeresnev/sinuca-bracket/internal/middleware"
	"github.com/AdamBeresnev/sinuca-bracket/internal/realtime"
	"github.com/AdamBeresnev/sinuca-bracket/internal/service"
	"github.com/AdamBeresnev/sinuca-bracket/internal/store"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	database := db.InitDB(cfg.DBDriver, cfg.DatabaseURL)
	defer database.Close()

	if err := db.RunMigrations(database.DB, cfg.DBDriver, cfg.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	metrics.Register()
	providers := middleware.InitAuth(cfg)

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.SessionLifetime
	if cfg.DBDriver == "sqlite3" {
		sessionManager.Store = sqlite3store.New(database.DB)
	} else {
		// TODO: switch to scs/postgresstore so admin sessions survive restarts on postgres
		sessionManager.Store = memstore.New()
	}

	auth, err := middleware.NewAuthenticator(sessionManager, cfg)
	if err != nil {
		log.Fatal("Failed to set up admin login: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := realtime.NewHub()
	go hub.Run(ctx)

	engine := bracket.NewEngine(bracket.WithAdvancePolicy(cfg.AdvancePolicy))
	tournaments := service.NewTournamentService(store.NewTournamentStore(database), engine, hub, cfg.TournamentID)

	router := newRouter(&application{
		cfg:         cfg,
		sessions:    sessionManager,
		auth:        auth,
		providers:   providers,
		tournaments: tournaments,
		hub:         hub,
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: router}
	go func() {
		log.Printf("Server starting on %s (tournament %q, advance policy %s)", cfg.Addr, cfg.TournamentID, cfg.AdvancePolicy)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("Shutdown failed:", err)
	}
}
