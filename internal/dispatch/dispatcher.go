// ABOUTME: Correlated request dispatcher over the message bus.
// ABOUTME: Pending table keyed by correlation ID, resolved by a shared subscriber.

package dispatch

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/bus"
)

// requestMethod is the method name carried in every request envelope.
const requestMethod = "handleRequest"

// defaultTimeout bounds a dispatch when no timeout is configured.
const defaultTimeout = 10 * time.Second

// Config holds dispatcher configuration, fixed at construction.
type Config struct {
	Routes        Routes
	ResponseTopic string
	Timeout       time.Duration
}

// pendingResult is what the response subscriber delivers to a waiting dispatch.
type pendingResult struct {
	reply Reply
	state map[string]string
}

// Dispatcher publishes intent-routed requests and awaits correlated
// responses. Safe for concurrent use.
type Dispatcher struct {
	bus           bus.Bus
	routes        Routes
	responseTopic string
	timeout       time.Duration
	logger        *slog.Logger

	mu          sync.Mutex
	pending     map[string]chan pendingResult
	closed      bool
	unsubscribe func()
}

// New creates a Dispatcher and subscribes it to the response topic.
func New(b bus.Bus, cfg Config, logger *slog.Logger) *Dispatcher {
	if cfg.ResponseTopic == "" {
		cfg.ResponseTopic = DefaultResponseTopic
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	d := &Dispatcher{
		bus:           b,
		routes:        cfg.Routes,
		responseTopic: cfg.ResponseTopic,
		timeout:       cfg.Timeout,
		logger:        logger,
		pending:       make(map[string]chan pendingResult),
	}
	d.unsubscribe = b.Subscribe(cfg.ResponseTopic, d.handleResponse)
	return d
}

// Dispatch publishes a request for intent and blocks until the correlated
// response arrives, the timeout fires, or ctx is canceled. It never
// returns an error: publish failures, timeouts, and cancellation all
// yield a synthesized fallback Result so the caller can always respond.
func (d *Dispatcher) Dispatch(ctx context.Context, intent, payload string, sessionContext json.RawMessage) *Result {
	correlationID := uuid.New().String()

	env := bus.RequestEnvelope{
		ID:     correlationID,
		Method: requestMethod,
		Params: bus.RequestParams{
			Payload:        payload,
			SessionContext: sessionContext,
			Intent:         intent,
			Timestamp:      time.Now().UTC(),
		},
	}
	data, err := json.Marshal(env)
	if err != nil {
		d.logger.Error("marshaling request envelope", "error", err, "intent", intent)
		return publishFallback(intent, err)
	}

	// Register the pending entry before publishing so a fast response
	// cannot arrive with no one waiting.
	ch := make(chan pendingResult, 1)
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return publishFallback(intent, bus.ErrClosed)
	}
	d.pending[correlationID] = ch
	d.mu.Unlock()

	topic := d.routes.Topic(intent)
	if err := d.bus.Publish(ctx, topic, data); err != nil {
		d.take(correlationID)
		d.logger.Error("publishing request", "error", err, "intent", intent, "topic", topic)
		return publishFallback(intent, err)
	}

	d.logger.Debug("request dispatched",
		"correlation_id", correlationID,
		"intent", intent,
		"topic", topic,
	)

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	select {
	case res, ok := <-ch:
		if !ok {
			// Dispatcher shut down while we were waiting.
			return publishFallback(intent, bus.ErrClosed)
		}
		return &Result{Reply: res.reply, State: res.state}

	case <-timer.C:
		if !d.take(correlationID) {
			// The response won the race and is already buffered.
			res := <-ch
			return &Result{Reply: res.reply, State: res.state}
		}
		d.logger.Warn("request timed out",
			"correlation_id", correlationID,
			"intent", intent,
			"timeout", d.timeout,
		)
		return timeoutFallback(intent)

	case <-ctx.Done():
		if !d.take(correlationID) {
			res := <-ch
			return &Result{Reply: res.reply, State: res.state}
		}
		d.logger.Warn("dispatch canceled", "correlation_id", correlationID, "intent", intent)
		return timeoutFallback(intent)
	}
}

// handleResponse parses a response envelope and resolves the matching
// pending entry. Unmatched and malformed envelopes are dropped; a
// malformed envelope leaves its pending entry to time out on its own.
func (d *Dispatcher) handleResponse(_ context.Context, data []byte) {
	var env bus.ResponseEnvelope
	if err := json.Unmarshal(data, &env); err != nil || env.ID == "" {
		d.logger.Warn("dropping malformed response envelope", "error", err)
		return
	}

	var reply Reply
	if err := json.Unmarshal(env.Result.Response, &reply); err != nil {
		d.logger.Warn("dropping response with malformed reply",
			"correlation_id", env.ID,
			"error", err,
		)
		return
	}

	var state map[string]string
	if len(env.Result.Context) > 0 {
		if err := json.Unmarshal(env.Result.Context, &state); err != nil {
			d.logger.Warn("ignoring malformed response context", "correlation_id", env.ID, "error", err)
			state = nil
		}
	}

	d.mu.Lock()
	ch, ok := d.pending[env.ID]
	if ok {
		delete(d.pending, env.ID)
	}
	d.mu.Unlock()

	if !ok {
		// Already resolved, timed out, or never issued. First response wins.
		d.logger.Warn("dropping response for unknown request", "correlation_id", env.ID)
		return
	}

	ch <- pendingResult{reply: reply, state: state}
}

// take removes a pending entry, reporting whether it was still present.
func (d *Dispatcher) take(correlationID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.pending[correlationID]; !ok {
		return false
	}
	delete(d.pending, correlationID)
	return true
}

// PendingCount returns the number of outstanding requests.
func (d *Dispatcher) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Close unsubscribes from the response topic and rejects all outstanding
// dispatches so no caller hangs. Close is idempotent.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	outstanding := d.pending
	d.pending = make(map[string]chan pendingResult)
	d.mu.Unlock()

	if d.unsubscribe != nil {
		d.unsubscribe()
	}
	for id, ch := range outstanding {
		close(ch)
		d.logger.Debug("rejected outstanding request on shutdown", "correlation_id", id)
	}
}
