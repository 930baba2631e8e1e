// ABOUTME: Conn wraps a single client WebSocket with a buffered outbound
// ABOUTME: queue, a dedicated write loop, and idempotent close.

package gateway

import (
	"context"
	"sync"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const sendBuffer = 64

// Conn is one client's transport handle. Outbound events go through
// sendCh so a slow client never blocks the caller; the write loop drains
// the queue until the connection closes.
type Conn struct {
	userID string
	// sessionID is non-empty when the client's token is scoped to one
	// chat session; messages on this connection always land there.
	sessionID string
	ws        *websocket.Conn
	sendCh    chan Event
	done      chan struct{}

	closeOnce sync.Once

	mu    sync.Mutex
	rooms map[string]struct{}
}

func newConn(userID string, ws *websocket.Conn) *Conn {
	return &Conn{
		userID: userID,
		ws:     ws,
		sendCh: make(chan Event, sendBuffer),
		done:   make(chan struct{}),
		rooms:  make(map[string]struct{}),
	}
}

// UserID returns the authenticated user this connection belongs to.
func (c *Conn) UserID() string { return c.userID }

// enqueue queues an event for delivery. Returns false if the connection
// is closed or its outbound queue is full.
func (c *Conn) enqueue(ev Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.sendCh <- ev:
		return true
	case <-c.done:
		return false
	default:
		return false
	}
}

// writeLoop drains the outbound queue onto the wire. Exits when the
// connection closes or a write fails.
func (c *Conn) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case ev := <-c.sendCh:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := wsjson.Write(ctx, c.ws, ev)
			cancel()
			if err != nil {
				c.close()
				return
			}
		}
	}
}

// closed reports whether close has been called.
func (c *Conn) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// close marks the connection dead. Idempotent; the underlying WebSocket
// close handshake is performed by the owner of the read loop.
func (c *Conn) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Conn) join(room string) {
	c.mu.Lock()
	c.rooms[room] = struct{}{}
	c.mu.Unlock()
}

func (c *Conn) leave(room string) {
	c.mu.Lock()
	delete(c.rooms, room)
	c.mu.Unlock()
}

func (c *Conn) inRoom(room string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.rooms[room]
	return ok
}
