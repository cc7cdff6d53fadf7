package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/text/language"

	"github.com/osse101/Tycoon_Go/internal/bootstrap"
	"github.com/osse101/Tycoon_Go/internal/config"
	"github.com/osse101/Tycoon_Go/internal/economy"
	"github.com/osse101/Tycoon_Go/internal/handler"
	"github.com/osse101/Tycoon_Go/internal/hud"
	"github.com/osse101/Tycoon_Go/internal/observer"
	"github.com/osse101/Tycoon_Go/internal/scheduler"
	"github.com/osse101/Tycoon_Go/internal/server"
	"github.com/osse101/Tycoon_Go/internal/sse"
	"github.com/osse101/Tycoon_Go/internal/worker"
)

// Passive income jobs are tiny; a short queue is plenty
const workerQueueSize = 16

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()
	for _, w := range warnings {
		slog.Warn(w)
	}

	if err := run(cfg); err != nil {
		slog.Error("Tycoon exited with error", "error", err)
		logFile.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	hub := sse.NewHub()
	hub.Start()
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{EventBus: bus, Hub: hub}); err != nil {
		return err
	}

	components, err := bootstrap.InitializeGame(ctx, cfg, publisher)
	if err != nil {
		return err
	}
	game := components.Game
	tuning := game.Config()

	pool := worker.NewPool(cfg.WorkerCount, workerQueueSize)
	pool.Start(ctx)
	sched := scheduler.New(pool)
	sched.Schedule(tuning.Economy.PassiveIncomeInterval, economy.NewPassiveIncomeJob(game.Economy()))

	obs := observer.NewServer(game, components.Input, observer.Config{
		Interval:   time.Duration(cfg.SnapshotEveryTicks) * tuning.TickInterval(),
		TickRateHz: tuning.TickRateHz,
	})

	tag, err := language.Parse(cfg.HUDLanguage)
	if err != nil {
		slog.Warn("Unknown HUD language, using English", "language", cfg.HUDLanguage, "error", err)
		tag = language.English
	}

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, server.Deps{
		Game:     game,
		Input:    components.Input,
		Cache:    handler.NewStateCache(cfg.StateCacheSize, 0),
		HUD:      hud.NewFormatter(tag),
		Hub:      hub,
		Observer: obs,
		Ready:    []handler.HealthChecker{game},
	})

	errCh := make(chan error, 3)
	go func() { errCh <- game.Run(ctx) }()
	go func() { errCh <- obs.Run(ctx) }()
	go func() { errCh <- srv.Start() }()

	slog.Info("Tycoon running", "port", cfg.Port, "tick_rate_hz", tuning.TickRateHz)

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case runErr = <-errCh:
		// Start returns nil only after Stop; anything here is unexpected
		slog.Error("Component exited early", "error", runErr)
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Game:               game,
		Scheduler:          sched,
		WorkerPool:         pool,
		Hub:                hub,
		ResilientPublisher: publisher,
	})

	return runErr
}
