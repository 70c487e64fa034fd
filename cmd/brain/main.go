package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campuscalm/brain/internal/api"
	"github.com/campuscalm/brain/internal/backfill"
	"github.com/campuscalm/brain/internal/concierge"
	"github.com/campuscalm/brain/internal/config"
	"github.com/campuscalm/brain/internal/content"
	"github.com/campuscalm/brain/internal/engine"
	"github.com/campuscalm/brain/internal/events"
	"github.com/campuscalm/brain/internal/store"
)

func main() {
	reclassify := flag.Bool("reclassify", false, "re-run the classifier over uncategorized history, then exit")
	dryRun := flag.Bool("dry-run", false, "with -reclassify: report what would change without writing")
	sinceDays := flag.Int("since-days", 30, "with -reclassify: how far back to scan")
	flag.Parse()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("brain starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready")

	// Seed the emotional content pack on first boot
	pack, err := content.DefaultPack()
	if err != nil {
		slog.Error("failed to load content pack", "error", err)
		os.Exit(1)
	}
	if err := db.SeedContent(ctx, pack); err != nil {
		slog.Error("failed to seed content", "error", err)
		os.Exit(1)
	}

	// Maintenance mode: reclassify old history and exit
	if *reclassify {
		runner := backfill.NewRunner(backfill.Config{
			Since:  time.Now().AddDate(0, 0, -*sinceDays),
			DryRun: *dryRun,
		}, db, db, slog.Default())
		if err := runner.Run(ctx); err != nil {
			slog.Error("reclassification failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// NATS fan-out (optional — the widget works without a broker)
	var publisher *events.Publisher
	if cfg.NatsURL != "" {
		publisher, err = events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured — running without event fan-out")
	}

	// Concierge and turn engine
	conc := concierge.New(db, db, db, concierge.Config{
		TTL:             time.Duration(cfg.PendingTTLMinutes) * time.Minute,
		DuplicateWindow: time.Duration(cfg.DuplicateWindowMinutes) * time.Minute,
	}, nil, slog.Default())

	settings := engine.Settings{
		MemoryWindow:         time.Duration(cfg.MemoryWindowHours) * time.Hour,
		HistoryLimit:         cfg.HistoryLimit,
		StressRepeatCount:    cfg.StressRepeatCount,
		EvolutionRepeatCount: cfg.EvolutionRepeatCount,
		TransitionWindow:     24 * time.Hour,
	}
	eng := engine.New(db, db, db, conc, settings, nil, nil, slog.Default())

	// HTTP API
	srv := api.NewServer(cfg.Port, cfg.APIToken, eng, publisher, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("brain ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("brain stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
