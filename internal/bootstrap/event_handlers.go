package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/pairloom/garden-engine/internal/config"
	"github.com/pairloom/garden-engine/internal/event"
	"github.com/pairloom/garden-engine/internal/metrics"
	"github.com/pairloom/garden-engine/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	SSEHub   *sse.Hub
	Config   *config.Config
}

// RegisterEventHandlers sets up all event handlers and subscribers.
// This includes:
// - Metrics collector (for event-based metrics)
// - SSE subscriber (pushes garden events to connected clients)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	// Register Metrics Collector
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	// Subscribe SSE broadcaster
	sseSubscriber := sse.NewSubscriber(deps.SSEHub, deps.EventBus, deps.Config.BroadcastBothSessions)
	sseSubscriber.Subscribe()
	slog.Info(LogMsgSSESubscriberRegistered,
		"broadcast_both_sessions", deps.Config.BroadcastBothSessions)

	return nil
}
