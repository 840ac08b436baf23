package sse

import (
	"context"
	"log/slog"

	"github.com/pairloom/garden-engine/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub so both paired
// sessions see garden changes in real time.
type Subscriber struct {
	hub *Hub
	bus event.Bus

	// broadcastBothSessions controls whether per-user watering events fan
	// out to every session or only the acting user's. Garden updates always
	// go to everyone; they carry no user-scoped information.
	broadcastBothSessions bool
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus, broadcastBothSessions bool) *Subscriber {
	return &Subscriber{
		hub:                   hub,
		bus:                   bus,
		broadcastBothSessions: broadcastBothSessions,
	}
}

// Subscribe registers handlers for all garden event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.GardenUpdated, s.handleBroadcast(EventTypeGardenUpdated))
	s.bus.Subscribe(event.GardenWatered, s.handleWatered)
	s.bus.Subscribe(event.GardenHarmonyBonus, s.handleBroadcast(EventTypeHarmonyBonus))
	s.bus.Subscribe(event.GardenStreakReward, s.handleBroadcast(EventTypeStreakReward))
	s.bus.Subscribe(event.GardenPunished, s.handleBroadcast(EventTypeGardenPunished))

	slog.Info("SSE subscriber registered for garden event types")
}

// handleBroadcast rebroadcasts a bus event to every interested session.
func (s *Subscriber) handleBroadcast(sseType string) event.Handler {
	return func(_ context.Context, evt event.Event) error {
		s.hub.Broadcast(sseType, evt.Payload)
		slog.Debug(LogMsgEventBroadcast, "event_type", sseType)
		return nil
	}
}

// handleWatered fans watering events out to both sessions or only the
// acting user's, per configuration.
func (s *Subscriber) handleWatered(_ context.Context, evt event.Event) error {
	if s.broadcastBothSessions {
		s.hub.Broadcast(EventTypeGardenWatered, evt.Payload)
		return nil
	}

	payload, err := event.DecodePayload[event.GardenWateredPayloadV1](evt.Payload)
	if err != nil {
		slog.Warn("Invalid watering event payload", "error", err)
		return nil
	}
	s.hub.SendToUser(payload.UserID, EventTypeGardenWatered, payload)
	return nil
}
