// ABOUTME: Wire event types exchanged with WebSocket clients.
// ABOUTME: Inbound chat events and outbound message/typing/broadcast events.

package gateway

import (
	"time"

	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/dispatch"
)

// Event type names.
const (
	EventConnected = "connected"
	EventMessage   = "message"
	EventTyping    = "typing"
	EventBroadcast = "broadcast"
	EventJoin      = "join"
	EventLeave     = "leave"
)

// Event is the JSON frame exchanged over a client connection. Inbound
// events carry Type message/join/leave; outbound events carry Type
// connected/message/typing/broadcast.
type Event struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	Message   string          `json:"message,omitempty"`
	Reply     *dispatch.Reply `json:"reply,omitempty"`
	Typing    bool            `json:"typing,omitempty"`
	Room      string          `json:"room,omitempty"`
	Timestamp time.Time       `json:"timestamp,omitempty"`
}
