// ABOUTME: In-process implementation of the Bus interface.
// ABOUTME: Topic-keyed fan-out with per-handler goroutines and panic recovery.

package bus

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

type subscription struct {
	id      uint64
	handler Handler
}

// Memory is a goroutine-safe in-process bus. Each published message is
// fanned out to every subscriber of its topic in a fresh goroutine, so a
// slow or panicking handler cannot stall publishers or other subscribers.
type Memory struct {
	mu     sync.RWMutex
	topics map[string][]subscription
	closed bool
	nextID atomic.Uint64
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewMemory creates an in-process bus.
func NewMemory(logger *slog.Logger) *Memory {
	return &Memory{
		topics: make(map[string][]subscription),
		logger: logger,
	}
}

// Publish delivers data to all current subscribers of topic.
// Messages on topics with no subscribers are dropped silently.
func (m *Memory) Publish(ctx context.Context, topic string, data []byte) error {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return ErrClosed
	}
	subs := make([]subscription, len(m.topics[topic]))
	copy(subs, m.topics[topic])
	// Counting deliveries while the lock is held means Close cannot slip
	// between the closed check and the Add, so Wait drains every handler
	// this publish starts.
	m.wg.Add(len(subs))
	m.mu.RUnlock()

	for _, sub := range subs {
		m.dispatch(ctx, topic, data, sub)
	}
	return nil
}

func (m *Memory) dispatch(ctx context.Context, topic string, data []byte, sub subscription) {
	go func() {
		defer m.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("bus handler panicked",
					"topic", topic,
					"panic", r,
				)
			}
		}()
		sub.handler(ctx, data)
	}()
}

// Subscribe registers a handler for a topic and returns an unsubscribe
// function. Unsubscribing twice is a no-op.
func (m *Memory) Subscribe(topic string, handler Handler) func() {
	id := m.nextID.Add(1)
	sub := subscription{id: id, handler: handler}

	m.mu.Lock()
	m.topics[topic] = append(m.topics[topic], sub)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		subs := m.topics[topic]
		for i, s := range subs {
			if s.id == id {
				m.topics[topic] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Close prevents new publishes and waits for in-flight handlers to finish.
// Close is idempotent.
func (m *Memory) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()
	m.wg.Wait()
}
