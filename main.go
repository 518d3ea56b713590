package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/judgeboard/cliparse"
	"github.com/danielhkuo/judgeboard/db"
	"github.com/danielhkuo/judgeboard/logging"
	"github.com/danielhkuo/judgeboard/metrics"
	"github.com/danielhkuo/judgeboard/middleware"
	"github.com/danielhkuo/judgeboard/router"
	"github.com/danielhkuo/judgeboard/rubric"
	"github.com/danielhkuo/judgeboard/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	// Judges, participants and rubrics
	ev, err := rubric.Load(cfg.EventFile)
	if err != nil {
		slog.Error("event config invalid", "error", err, "file", cfg.EventFile)
		os.Exit(1)
	}
	slog.Info("Event loaded", "event", ev.Name, "judges", len(ev.Judges), "participants", len(ev.Participants))

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Apply migrations
	if err := db.Migrate(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	if v, dirty, err := db.Version(dbConn, cfg.DatabaseType); err == nil {
		slog.Info("Database schema ready", "version", v, "dirty", dirty)
	}

	s := store.NewSQLStore(dbConn, cfg.DatabaseType)
	seeded, err := s.SeedParticipants(context.Background(), ev.Participants)
	if err != nil {
		slog.Error("participant seeding failed", "error", err)
		os.Exit(1)
	}
	if seeded > 0 {
		slog.Info("Participants seeded", "count", seeded)
	}

	// Create router
	mux := router.NewRouter(s, ev, cfg, metrics.NewManager())

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "database", cfg.DatabaseType)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}
