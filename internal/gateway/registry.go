// ABOUTME: Registry maps authenticated users to their live WebSocket
// ABOUTME: connections for targeted send, broadcast, and typing signals.

package gateway

import (
	"log/slog"
	"sync"

	"nhooyr.io/websocket"
)

// Registry is the live user-to-connection map. At most one connection per
// user: registering a second connection for the same user supersedes and
// closes the first. All delivery is best-effort; nothing is queued for
// disconnected users.
type Registry struct {
	mu     sync.Mutex
	conns  map[string]*Conn
	logger *slog.Logger
}

// NewRegistry creates an empty connection registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		conns:  make(map[string]*Conn),
		logger: logger.With("component", "registry"),
	}
}

// Register inserts the mapping for c's user. If a previous connection
// exists it is closed so the old client observes the handover instead of
// silently going stale.
func (r *Registry) Register(c *Conn) {
	r.mu.Lock()
	prev := r.conns[c.userID]
	r.conns[c.userID] = c
	r.mu.Unlock()

	if prev != nil && prev != c {
		prev.close()
		if prev.ws != nil {
			prev.ws.Close(websocket.StatusGoingAway, "superseded by new connection")
		}
		r.logger.Info("connection superseded", "user_id", c.userID)
	}
}

// Unregister removes the mapping for userID. Calling it for an unknown
// user is a no-op.
func (r *Registry) Unregister(userID string) {
	r.mu.Lock()
	delete(r.conns, userID)
	r.mu.Unlock()
}

// release removes the mapping only if it still points at c. A connection
// superseded by a newer Register must not tear down its replacement.
func (r *Registry) release(c *Conn) {
	r.mu.Lock()
	if r.conns[c.userID] == c {
		delete(r.conns, c.userID)
	}
	r.mu.Unlock()
}

// Send delivers an event to userID's connection. Returns false if the
// user is not connected; a stale (closed) handle is pruned and treated as
// not connected.
func (r *Registry) Send(userID string, ev Event) bool {
	r.mu.Lock()
	c := r.conns[userID]
	r.mu.Unlock()

	if c == nil {
		return false
	}
	if c.closed() {
		r.release(c)
		return false
	}
	if !c.enqueue(ev) {
		r.logger.Warn("dropping event for slow or closed client", "user_id", userID, "event", ev.Type)
		return false
	}
	return true
}

// SetTyping signals a typing indicator to userID. Fire and forget.
func (r *Registry) SetTyping(userID string, typing bool) {
	r.Send(userID, Event{Type: EventTyping, Typing: typing})
}

// Broadcast fans an event out to every member of room. Best-effort, no
// delivery confirmation.
func (r *Registry) Broadcast(room string, ev Event) {
	r.mu.Lock()
	members := make([]*Conn, 0, len(r.conns))
	for _, c := range r.conns {
		if c.inRoom(room) {
			members = append(members, c)
		}
	}
	r.mu.Unlock()

	ev.Type = EventBroadcast
	ev.Room = room
	for _, c := range members {
		if !c.enqueue(ev) {
			r.logger.Warn("dropping broadcast for slow or closed client", "user_id", c.userID, "room", room)
		}
	}
}

// Join adds userID's connection to a room. No-op if the user is not
// connected.
func (r *Registry) Join(userID, room string) {
	r.mu.Lock()
	c := r.conns[userID]
	r.mu.Unlock()
	if c != nil {
		c.join(room)
	}
}

// Leave removes userID's connection from a room.
func (r *Registry) Leave(userID, room string) {
	r.mu.Lock()
	c := r.conns[userID]
	r.mu.Unlock()
	if c != nil {
		c.leave(room)
	}
}

// Count returns the number of connected users.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// CloseAll closes every connection. Used during shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	conns := make([]*Conn, 0, len(r.conns))
	for _, c := range r.conns {
		conns = append(conns, c)
	}
	r.conns = make(map[string]*Conn)
	r.mu.Unlock()

	for _, c := range conns {
		c.close()
		if c.ws != nil {
			c.ws.Close(websocket.StatusGoingAway, "server shutting down")
		}
	}
}
