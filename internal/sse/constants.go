package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the hub's inbound event channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for the unregister channel
	ClientChannelBuffer = 10
)

// KeepaliveInterval is how often an idle stream receives a ping
const KeepaliveInterval = 30 * time.Second

// Event types sent over SSE
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"

	EventTypeVerification = "verification.status_changed"
	EventTypeQuest        = "quest.completed"
	EventTypeCheckIn      = "quest.checkin"
	EventTypeAscension    = "level.ascended"
	EventTypeRedemption   = "shop.item_redeemed"
	EventTypeCatalog      = "catalog.changed"
)

// TypesQueryParam narrows a stream to a comma separated list of event types
const TypesQueryParam = "types"

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventPushed        = "Pushing SSE event"
	LogMsgEventDropped       = "SSE buffer full, dropping event"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscriberReady    = "SSE subscriber registered for event types"
	LogMsgBadPayload         = "Failed to decode event for SSE"
)

// Error messages
const (
	ErrMsgStreamingUnsupported = "SSE not supported"
	ErrMsgUnauthenticated      = "Authentication required"
)
