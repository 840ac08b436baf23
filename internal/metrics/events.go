package metrics

import (
	"context"

	"github.com/pairloom/garden-engine/internal/event"
	"github.com/pairloom/garden-engine/internal/logger"
)

// EventMetricsCollector subscribes to garden events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.GardenUpdated,
		event.GardenWatered,
		event.GardenHarmonyBonus,
		event.GardenStreakReward,
		event.GardenPunished,
		event.GardenRevived,
		event.GardenItemPlaced,
		event.GardenItemsRemoved,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	// Record business metrics based on event type. A payload that fails to
	// decode is skipped; the event counter above already recorded it.
	switch evt.Type {
	case event.GardenWatered:
		Waterings.Inc()

	case event.GardenHarmonyBonus:
		HarmonyBonuses.Inc()
		if payload, err := event.DecodePayload[event.GardenRewardPayloadV1](evt.Payload); err == nil {
			// Rewards pay both users of the pair.
			GoldPaidOut.Add(float64(payload.GoldEach) * 2)
		}

	case event.GardenStreakReward:
		StreakRewards.Inc()
		if payload, err := event.DecodePayload[event.GardenRewardPayloadV1](evt.Payload); err == nil {
			GoldPaidOut.Add(float64(payload.GoldEach) * 2)
		}

	case event.GardenPunished:
		GardensPunished.Inc()

	case event.GardenRevived:
		Revivals.Inc()
		if payload, err := event.DecodePayload[event.GardenRevivedPayloadV1](evt.Payload); err == nil {
			GoldSpent.Add(float64(payload.GoldCost))
		}

	case event.GardenItemPlaced:
		if payload, err := event.DecodePayload[event.GardenItemPlacedPayloadV1](evt.Payload); err == nil {
			ItemsPlaced.WithLabelValues(payload.ItemType).Inc()
		}

	case event.GardenItemsRemoved:
		if payload, err := event.DecodePayload[event.GardenItemsRemovedPayloadV1](evt.Payload); err == nil {
			ItemsRemoved.WithLabelValues(payload.Scope).Inc()
			GoldPaidOut.Add(float64(payload.GoldRefundedEach) * 2)
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
