package bootstrap

import (
	"context"
	"log/slog"

	"github.com/pairloom/garden-engine/internal/event"
	"github.com/pairloom/garden-engine/internal/scheduler"
	"github.com/pairloom/garden-engine/internal/server"
	"github.com/pairloom/garden-engine/internal/sse"
	"github.com/pairloom/garden-engine/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	SSEHub             *sse.Hub
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down components in the correct order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler (stop enqueueing new sweep jobs)
// 3. Worker pool (drain in-flight jobs)
// 4. SSE hub (disconnect clients)
// 5. Event publisher (flush pending events to ensure consistency)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	// Shutdown server first (stop accepting new requests)
	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	// Stop the scheduler before the pool so no new jobs are enqueued
	if components.Scheduler != nil {
		components.Scheduler.Stop()
		slog.Info(LogMsgSchedulerStopped)
	}

	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
		slog.Info(LogMsgWorkerPoolStopped)
	}

	if components.SSEHub != nil {
		components.SSEHub.Stop()
		slog.Info(LogMsgSSEHubStopped)
	}

	// Shutdown resilient publisher last to flush pending events
	slog.Info(LogMsgShuttingDownEventPublisher)
	if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
		slog.Error(LogMsgResilientPublisherFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
