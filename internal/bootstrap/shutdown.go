package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/Tycoon_Go/internal/engine"
	"github.com/osse101/Tycoon_Go/internal/event"
	"github.com/osse101/Tycoon_Go/internal/scheduler"
	"github.com/osse101/Tycoon_Go/internal/server"
	"github.com/osse101/Tycoon_Go/internal/sse"
	"github.com/osse101/Tycoon_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Game               *engine.Game
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	Hub                *sse.Hub
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops the application in order:
// 1. HTTP server (stop accepting new requests)
// 2. Simulation tick loop
// 3. Scheduler and worker pool (no more passive income)
// 4. Event stream hub (disconnects stream clients)
// 5. Event publisher (dead-letters pending retries)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Game != nil {
		components.Game.Stop()
		slog.Info(LogMsgGameStopped, "tick", components.Game.Tick())
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}
	slog.Info(LogMsgWorkersStopped)

	if components.Hub != nil {
		components.Hub.Stop()
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
