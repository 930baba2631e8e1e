// ABOUTME: Tests for the per-message orchestration pipeline wiring the
// ABOUTME: registry, session store, classifier, and dispatcher together.

package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/agents"
	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/bus"
	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/dispatch"
	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/intent"
	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/session"
)

type orchFixture struct {
	orch     *Orchestrator
	registry *Registry
	store    *session.MemoryStore
}

func newOrchFixture(t *testing.T) *orchFixture {
	t.Helper()
	logger := testLogger(t)

	b := bus.NewMemory(logger)
	t.Cleanup(b.Close)

	routes := dispatch.DefaultRoutes()
	dispatcher := dispatch.New(b, dispatch.Config{
		Routes:        routes,
		ResponseTopic: dispatch.DefaultResponseTopic,
		Timeout:       2 * time.Second,
	}, logger)
	t.Cleanup(dispatcher.Close)

	runner := agents.NewRunner(b, dispatch.DefaultResponseTopic, logger)
	runner.RegisterAll(routes)
	t.Cleanup(runner.Close)

	registry := NewRegistry(logger)
	store := session.NewMemoryStore()
	classifier := intent.NewClassifier(nil, logger)

	return &orchFixture{
		orch:     NewOrchestrator(registry, store, classifier, dispatcher, logger),
		registry: registry,
		store:    store,
	}
}

// nextEvent reads events from the connection, skipping typing indicators.
func nextEvent(t *testing.T, c *Conn) Event {
	t.Helper()
	for {
		select {
		case ev := <-c.sendCh:
			if ev.Type == EventTyping {
				continue
			}
			return ev
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestOrchestrator_HandleMessage_DeliversAgentReply(t *testing.T) {
	f := newOrchFixture(t)
	c := newConn("alice", nil)
	f.registry.Register(c)

	err := f.orch.HandleMessage(context.Background(), "alice", "sess-1", "tell me about Goa")
	require.NoError(t, err)

	ev := nextEvent(t, c)
	assert.Equal(t, EventMessage, ev.Type)
	assert.Equal(t, "sess-1", ev.SessionID)
	require.NotNil(t, ev.Reply)
	assert.Equal(t, "place", ev.Reply.Agent)
	assert.Contains(t, ev.Reply.Response, "Goa")

	sess, err := f.store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, sess.History, 2)
	assert.Equal(t, "user", sess.History[0].Role)
	assert.Equal(t, "assistant", sess.History[1].Role)
	assert.Equal(t, "place", sess.State["last_agent"])
	assert.Equal(t, "place", sess.State["last_intent"])
	assert.Equal(t, "tell me about Goa", sess.State["last_message"])
}

func TestOrchestrator_HandleMessage_SendsTypingIndicators(t *testing.T) {
	f := newOrchFixture(t)
	c := newConn("alice", nil)
	f.registry.Register(c)

	require.NoError(t, f.orch.HandleMessage(context.Background(), "alice", "sess-1", "hello"))

	// The send queue preserves enqueue order: the indicator clears
	// before the reply goes out.
	var sequence []string
	for len(c.sendCh) > 0 {
		ev := <-c.sendCh
		switch ev.Type {
		case EventTyping:
			if ev.Typing {
				sequence = append(sequence, "typing-on")
			} else {
				sequence = append(sequence, "typing-off")
			}
		case EventMessage:
			sequence = append(sequence, "message")
		}
	}
	assert.Equal(t, []string{"typing-on", "typing-off", "message"}, sequence)
}

func TestOrchestrator_HandleMessage_StoreFailureAbortsMessage(t *testing.T) {
	f := newOrchFixture(t)
	c := newConn("alice", nil)
	f.registry.Register(c)
	f.store.FailUpdates = errors.New("document store unreachable")

	err := f.orch.HandleMessage(context.Background(), "alice", "sess-1", "hello")
	require.Error(t, err)

	// Typing indicators still fire, but no reply is delivered.
	for len(c.sendCh) > 0 {
		ev := <-c.sendCh
		assert.NotEqual(t, EventMessage, ev.Type)
	}
}

func TestOrchestrator_HandleMessage_DisconnectedUserIsLoggedNotFatal(t *testing.T) {
	f := newOrchFixture(t)

	err := f.orch.HandleMessage(context.Background(), "ghost", "sess-1", "hello")

	require.NoError(t, err)
}
