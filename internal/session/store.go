// ABOUTME: Store interface and SessionContext types for session persistence.
// ABOUTME: Defines Turn history entries and the narrow get/update contract.

package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested session does not exist.
var ErrNotFound = errors.New("session not found")

// Turn is a single exchange entry in a session's history.
type Turn struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Agent     string    `json:"agent,omitempty"` // which agent produced an assistant turn
	CreatedAt time.Time `json:"created_at"`
}

// Context is the per-session document the orchestrator reads and writes.
type Context struct {
	SessionID string            `json:"sessionId"`
	UserID    string            `json:"userId"`
	CreatedAt time.Time         `json:"createdAt"`
	History   []Turn            `json:"history"`
	State     map[string]string `json:"state,omitempty"`
}

// Store defines session persistence. Concurrent updates to the same
// session are last-write-wins.
type Store interface {
	// GetOrCreate returns the session, creating an empty one if absent.
	GetOrCreate(ctx context.Context, sessionID, userID string) (*Context, error)

	// Get returns the session or ErrNotFound.
	Get(ctx context.Context, sessionID string) (*Context, error)

	// Update merges state into the session's accumulated key/value state.
	Update(ctx context.Context, sessionID string, state map[string]string) error

	// AppendTurn appends one history entry.
	AppendTurn(ctx context.Context, sessionID string, turn Turn) error

	// Close releases underlying resources.
	Close() error
}
