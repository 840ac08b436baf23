package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout is the timeout for writing to client connections
	WriteTimeout = 10 * time.Second
)

// Event types for SSE
const (
	// EventTypeGardenUpdated is sent after any committed garden write so
	// both sessions re-fetch their view
	EventTypeGardenUpdated = "garden.updated"

	// EventTypeGardenWatered is sent when a user waters the garden
	EventTypeGardenWatered = "garden.watered"

	// EventTypeHarmonyBonus is sent when both users watered the same day
	EventTypeHarmonyBonus = "garden.harmony_bonus"

	// EventTypeStreakReward is sent when the watering streak pays out
	EventTypeStreakReward = "garden.streak_reward"

	// EventTypeGardenPunished is sent when the neglect sweep demotes a garden
	EventTypeGardenPunished = "garden.punished"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgWriteError         = "Failed to write SSE event"
)
