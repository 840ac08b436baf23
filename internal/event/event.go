package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Garden event types. Every successful garden mutation publishes
// GardenUpdated so both paired sessions resync their view.
const (
	GardenUpdated      Type = "garden.updated"
	GardenWatered      Type = "garden.watered"
	GardenHarmonyBonus Type = "garden.harmony_bonus"
	GardenStreakReward Type = "garden.streak_reward"
	GardenPunished     Type = "garden.punished"
	GardenRevived      Type = "garden.revived"
	GardenItemPlaced   Type = "garden.item_placed"
	GardenItemsRemoved Type = "garden.items_removed"
)

// GardenUpdatedPayloadV1 is the typed payload for garden update events.
// Revision lets clients discard out-of-order notifications.
type GardenUpdatedPayloadV1 struct {
	PairID    string `json:"pair_id"`
	Revision  int64  `json:"revision"`
	Timestamp int64  `json:"timestamp"`
}

// GardenWateredPayloadV1 is the typed payload for watering events
type GardenWateredPayloadV1 struct {
	PairID       string `json:"pair_id"`
	UserID       string `json:"user_id"`
	StreakDays   int    `json:"streak_days"`
	HarmonyBonus bool   `json:"harmony_bonus"`
	Timestamp    int64  `json:"timestamp"`
}

// GardenRewardPayloadV1 is the typed payload for harmony and streak rewards
type GardenRewardPayloadV1 struct {
	PairID    string `json:"pair_id"`
	GoldEach  int    `json:"gold_each"`
	Timestamp int64  `json:"timestamp"`
}

// GardenRevivedPayloadV1 is the typed payload for paid revival events
type GardenRevivedPayloadV1 struct {
	PairID    string `json:"pair_id"`
	UserID    string `json:"user_id"`
	GoldCost  int    `json:"gold_cost"`
	Timestamp int64  `json:"timestamp"`
}

// GardenPunishedPayloadV1 is the typed payload for neglect punishment events
type GardenPunishedPayloadV1 struct {
	PairID       string `json:"pair_id"`
	LevelBefore  int    `json:"level_before"`
	LevelAfter   int    `json:"level_after"`
	PrunedItemID string `json:"pruned_item_id,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}

// GardenItemPlacedPayloadV1 is the typed payload for placement events
type GardenItemPlacedPayloadV1 struct {
	PairID    string `json:"pair_id"`
	UserID    string `json:"user_id"`
	ItemID    string `json:"item_id"`
	ItemType  string `json:"item_type"`
	Timestamp int64  `json:"timestamp"`
}

// GardenItemsRemovedPayloadV1 is the typed payload for bulk removal events
type GardenItemsRemovedPayloadV1 struct {
	PairID           string `json:"pair_id"`
	Scope            string `json:"scope"` // plants, decor, landmarks, all
	ItemsRemoved     int    `json:"items_removed"`
	GoldRefundedEach int    `json:"gold_refunded_each"`
	Timestamp        int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewGardenUpdatedEvent creates a garden update event
func NewGardenUpdatedEvent(pairID string, revision int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GardenUpdated,
		Payload: GardenUpdatedPayloadV1{
			PairID:    pairID,
			Revision:  revision,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewGardenWateredEvent creates a watering event
func NewGardenWateredEvent(pairID, userID string, streakDays int, harmonyBonus bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GardenWatered,
		Payload: GardenWateredPayloadV1{
			PairID:       pairID,
			UserID:       userID,
			StreakDays:   streakDays,
			HarmonyBonus: harmonyBonus,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewGardenRewardEvent creates a harmony or streak reward event
func NewGardenRewardEvent(eventType Type, pairID string, goldEach int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: GardenRewardPayloadV1{
			PairID:    pairID,
			GoldEach:  goldEach,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewGardenRevivedEvent creates a paid revival event
func NewGardenRevivedEvent(pairID, userID string, goldCost int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GardenRevived,
		Payload: GardenRevivedPayloadV1{
			PairID:    pairID,
			UserID:    userID,
			GoldCost:  goldCost,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewGardenPunishedEvent creates a neglect punishment event
func NewGardenPunishedEvent(pairID string, levelBefore, levelAfter int, prunedItemID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GardenPunished,
		Payload: GardenPunishedPayloadV1{
			PairID:       pairID,
			LevelBefore:  levelBefore,
			LevelAfter:   levelAfter,
			PrunedItemID: prunedItemID,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewGardenItemPlacedEvent creates a placement event
func NewGardenItemPlacedEvent(pairID, userID, itemID, itemType string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GardenItemPlaced,
		Payload: GardenItemPlacedPayloadV1{
			PairID:    pairID,
			UserID:    userID,
			ItemID:    itemID,
			ItemType:  itemType,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewGardenItemsRemovedEvent creates a bulk removal event
func NewGardenItemsRemovedEvent(pairID, scope string, itemsRemoved, goldRefundedEach int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GardenItemsRemoved,
		Payload: GardenItemsRemovedPayloadV1{
			PairID:           pairID,
			Scope:            scope,
			ItemsRemoved:     itemsRemoved,
			GoldRefundedEach: goldRefundedEach,
			Timestamp:        time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers execute synchronously; keep them fast.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
