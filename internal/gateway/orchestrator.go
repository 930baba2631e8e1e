// ABOUTME: Orchestrator sequences one inbound chat message through
// ABOUTME: classification, agent dispatch, session persistence, and delivery.

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/dispatch"
	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/intent"
	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/session"
)

// Orchestrator runs the per-message pipeline. Each message is handled
// independently; a failure for one message never affects others in
// flight.
type Orchestrator struct {
	registry   *Registry
	sessions   session.Store
	classifier *intent.Classifier
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

// NewOrchestrator wires the pipeline stages together.
func NewOrchestrator(registry *Registry, sessions session.Store, classifier *intent.Classifier, dispatcher *dispatch.Dispatcher, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		registry:   registry,
		sessions:   sessions,
		classifier: classifier,
		dispatcher: dispatcher,
		logger:     logger.With("component", "orchestrator"),
	}
}

// HandleMessage processes one chat message end to end: typing on, fetch
// or create the session, classify, dispatch to the agent, persist the
// merged session state and history, typing off, deliver.
//
// Session store failures abort this message and are returned to the
// caller. Dispatcher failures never surface here: the dispatcher
// synthesizes a fallback reply. A delivery failure (user disconnected
// mid-flight) is logged and the result is discarded.
func (o *Orchestrator) HandleMessage(ctx context.Context, userID, sessionID, message string) error {
	logger := o.logger.With("session_id", sessionID, "user_id", userID)

	o.registry.SetTyping(userID, true)
	typingStopped := false
	stopTyping := func() {
		if !typingStopped {
			typingStopped = true
			o.registry.SetTyping(userID, false)
		}
	}
	// The deferred call covers the early-error exits only; on success the
	// indicator is cleared before the reply goes out.
	defer stopTyping()

	sess, err := o.sessions.GetOrCreate(ctx, sessionID, userID)
	if err != nil {
		logger.Error("loading session", "error", err)
		return fmt.Errorf("loading session %s: %w", sessionID, err)
	}

	if err := o.sessions.AppendTurn(ctx, sessionID, session.Turn{
		Role:      "user",
		Content:   message,
		CreatedAt: time.Now(),
	}); err != nil {
		logger.Error("recording user turn", "error", err)
		return fmt.Errorf("recording user turn: %w", err)
	}

	label := o.classifier.Classify(ctx, message)
	logger.Debug("message classified", "intent", label)

	sessJSON, err := json.Marshal(sess)
	if err != nil {
		logger.Error("encoding session context", "error", err)
		return fmt.Errorf("encoding session context: %w", err)
	}

	result := o.dispatcher.Dispatch(ctx, label, message, sessJSON)

	state := map[string]string{
		"last_intent":  label,
		"last_message": message,
	}
	for k, v := range result.State {
		state[k] = v
	}
	if err := o.sessions.Update(ctx, sessionID, state); err != nil {
		logger.Error("persisting session state", "error", err)
		return fmt.Errorf("persisting session %s: %w", sessionID, err)
	}

	if err := o.sessions.AppendTurn(ctx, sessionID, session.Turn{
		Role:      "assistant",
		Content:   result.Reply.Response,
		Agent:     result.Reply.Agent,
		CreatedAt: time.Now(),
	}); err != nil {
		logger.Error("recording assistant turn", "error", err)
		return fmt.Errorf("recording assistant turn: %w", err)
	}

	stopTyping()

	delivered := o.registry.Send(userID, Event{
		Type:      EventMessage,
		SessionID: sessionID,
		Reply:     &result.Reply,
		Timestamp: time.Now(),
	})
	if !delivered {
		logger.Warn("user disconnected before delivery", "agent", result.Reply.Agent)
	}
	return nil
}
