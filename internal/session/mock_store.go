// ABOUTME: In-memory Store implementation for tests and ephemeral deployments.
// ABOUTME: Mirrors SQLiteStore semantics including last-write-wins merge updates.

package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a goroutine-safe in-memory Store.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Context

	// FailUpdates forces Update to return the given error, for testing
	// orchestrator error paths. Nil in normal operation.
	FailUpdates error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Context)}
}

// GetOrCreate returns the session, creating an empty one if absent.
func (m *MemoryStore) GetOrCreate(_ context.Context, sessionID, userID string) (*Context, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[sessionID]; ok {
		return copyContext(sess), nil
	}
	sess := &Context{
		SessionID: sessionID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		State:     make(map[string]string),
	}
	m.sessions[sessionID] = sess
	return copyContext(sess), nil
}

// Get returns the session or ErrNotFound.
func (m *MemoryStore) Get(_ context.Context, sessionID string) (*Context, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return copyContext(sess), nil
}

// Update merges state into the session state.
func (m *MemoryStore) Update(_ context.Context, sessionID string, state map[string]string) error {
	if m.FailUpdates != nil {
		return m.FailUpdates
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	for k, v := range state {
		sess.State[k] = v
	}
	return nil
}

// AppendTurn appends one history entry.
func (m *MemoryStore) AppendTurn(_ context.Context, sessionID string, turn Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	sess.History = append(sess.History, turn)
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

func copyContext(sess *Context) *Context {
	cp := &Context{
		SessionID: sess.SessionID,
		UserID:    sess.UserID,
		CreatedAt: sess.CreatedAt,
		History:   make([]Turn, len(sess.History)),
		State:     make(map[string]string, len(sess.State)),
	}
	copy(cp.History, sess.History)
	for k, v := range sess.State {
		cp.State[k] = v
	}
	return cp
}
