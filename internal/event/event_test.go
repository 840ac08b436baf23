package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	handled := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		if event.Type != eventType {
			t.Errorf("Expected event type %s, got %s", eventType, event.Type)
		}
		if event.Payload.(string) != "payload" {
			t.Errorf("Expected payload 'payload', got %v", event.Payload)
		}
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{
		Version: "1.0",
		Type:    eventType,
		Payload: "payload",
	})

	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if !handled {
		t.Error("Handler was not called")
	}
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	count := 0

	handler := func(ctx context.Context, event Event) error {
		count++
		return nil
	}

	bus.Subscribe(eventType, handler)
	bus.Subscribe(eventType, handler)

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected 2 handlers to be called, got %d", count)
	}
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	if err == nil {
		t.Error("Expected error from Publish, got nil")
	}
}

func TestMemoryBus_PublishNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: Type("unhandled")})
	if err != nil {
		t.Errorf("Publish to unhandled type returned error: %v", err)
	}
}

func TestNewGardenWateredEvent(t *testing.T) {
	evt := NewGardenWateredEvent("pair-1", "user-a", 2, true)

	if evt.Version != EventSchemaVersion {
		t.Errorf("Expected version %s, got %s", EventSchemaVersion, evt.Version)
	}
	if evt.Type != GardenWatered {
		t.Errorf("Expected type %s, got %s", GardenWatered, evt.Type)
	}

	payload, ok := evt.Payload.(GardenWateredPayloadV1)
	if !ok {
		t.Fatalf("Expected GardenWateredPayloadV1, got %T", evt.Payload)
	}
	if payload.PairID != "pair-1" || payload.UserID != "user-a" {
		t.Errorf("Unexpected payload identifiers: %+v", payload)
	}
	if payload.StreakDays != 2 || !payload.HarmonyBonus {
		t.Errorf("Unexpected payload values: %+v", payload)
	}
	if payload.Timestamp == 0 {
		t.Error("Expected a non-zero timestamp")
	}
}

func TestDecodePayload_TypedStruct(t *testing.T) {
	evt := NewGardenRewardEvent(GardenStreakReward, "pair-1", 3)

	payload, err := DecodePayload[GardenRewardPayloadV1](evt.Payload)
	if err != nil {
		t.Fatalf("DecodePayload returned error: %v", err)
	}
	if payload.PairID != "pair-1" || payload.GoldEach != 3 {
		t.Errorf("Unexpected payload: %+v", payload)
	}
}

func TestDecodePayload_RawMessage(t *testing.T) {
	// Dead-letter replays carry payloads as raw JSON.
	raw := json.RawMessage(`{"pair_id":"pair-1","gold_each":3}`)

	payload, err := DecodePayload[GardenRewardPayloadV1](raw)
	if err != nil {
		t.Fatalf("DecodePayload returned error: %v", err)
	}
	if payload.PairID != "pair-1" || payload.GoldEach != 3 {
		t.Errorf("Unexpected payload: %+v", payload)
	}
}

func TestDecodePayload_JSONFallback(t *testing.T) {
	// Payloads arriving from serialized sources decode as generic maps.
	raw := map[string]interface{}{
		"pair_id":   "pair-1",
		"gold_each": float64(3),
	}

	payload, err := DecodePayload[GardenRewardPayloadV1](raw)
	if err != nil {
		t.Fatalf("DecodePayload returned error: %v", err)
	}
	if payload.PairID != "pair-1" || payload.GoldEach != 3 {
		t.Errorf("Unexpected payload: %+v", payload)
	}
}
