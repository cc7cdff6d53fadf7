package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/Tycoon_Go/internal/domain"
	"github.com/osse101/Tycoon_Go/internal/logger"
)

// Run drives StepOnce at TickRateHz until ctx is done or Stop is called.
// A stopped game cannot be run again.
func (g *Game) Run(ctx context.Context) error {
	select {
	case <-g.stop:
		return domain.ErrSimulationStopped
	default:
	}

	g.running.Store(true)
	defer g.running.Store(false)

	interval := g.cfg.TickInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log := logger.FromContext(ctx)
	log.Info(LogMsgRunStarted, "interval", interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(LogMsgRunStopped, "tick", g.Tick(), "reason", ctx.Err())
			return ctx.Err()
		case <-g.stop:
			log.Info(LogMsgRunStopped, "tick", g.Tick())
			return nil
		case <-ticker.C:
			g.StepOnce(ctx)
		}
	}
}

// CheckHealth reports whether the tick loop is live
func (g *Game) CheckHealth(_ context.Context) error {
	select {
	case <-g.stop:
		return domain.ErrSimulationStopped
	default:
	}
	if !g.running.Load() {
		return fmt.Errorf("%w: %s", domain.ErrSimulationStopped, ErrMsgNotRunning)
	}
	return nil
}

// Stop ends Run. It is safe to call more than once.
func (g *Game) Stop() {
	g.stopOnce.Do(func() { close(g.stop) })
}
