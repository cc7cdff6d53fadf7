package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/Tycoon_Go/internal/config"
	"github.com/osse101/Tycoon_Go/internal/engine"
	"github.com/osse101/Tycoon_Go/internal/event"
	"github.com/osse101/Tycoon_Go/internal/metrics"
	"github.com/osse101/Tycoon_Go/internal/progression"
	"github.com/osse101/Tycoon_Go/internal/validation"
)

// GameComponents is the simulation plus the input latch feeding it
type GameComponents struct {
	Game  *engine.Game
	Input *engine.InputLatch
}

// InitializeGame loads tuning and the catalog named by cfg and builds the
// game. An empty catalog path selects the built-in catalog; an empty tuning
// path selects the built-in tuning.
func InitializeGame(ctx context.Context, cfg *config.Config, publisher event.Publisher) (*GameComponents, error) {
	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadTuning, err)
	}
	slog.Info(LogMsgTuningLoaded,
		"path", cfg.TuningPath,
		"tick_rate_hz", tuning.TickRateHz,
		"passive_income_interval", tuning.Economy.PassiveIncomeInterval)

	catalog := progression.DefaultCatalog()
	if cfg.CatalogPath != "" {
		catalog, err = progression.LoadCatalog(ctx, cfg.CatalogPath, validation.NewSchemaValidator(), cfg.CatalogSchemaPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
		}
	}
	slog.Info(LogMsgCatalogLoaded, "version", catalog.Version, "nodes", len(catalog.Nodes))

	input := engine.NewInputLatch()
	opts := []engine.Option{
		engine.WithInputSource(input),
		engine.WithTickObserver(metrics.ObserveTick),
	}
	if publisher != nil {
		opts = append(opts, engine.WithPublisher(publisher))
	}

	game, err := engine.New(tuning, catalog, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateGame, err)
	}

	return &GameComponents{Game: game, Input: input}, nil
}
