// ABOUTME: Bus interface and subscription types for topic-based messaging.
// ABOUTME: Defines the narrow contract the dispatcher and agents depend on.

package bus

import (
	"context"
	"errors"
)

// ErrClosed is returned by Publish after the bus has been shut down.
var ErrClosed = errors.New("bus closed")

// Handler is invoked with the raw payload of each message delivered on a
// subscribed topic. Handlers run concurrently; they must be goroutine-safe.
type Handler func(ctx context.Context, data []byte)

// Bus is a topic-based publish/subscribe channel.
type Bus interface {
	// Publish sends data to every current subscriber of topic.
	// Delivery is at-most-once and fire-and-forget.
	Publish(ctx context.Context, topic string, data []byte) error

	// Subscribe registers a handler for a topic and returns an
	// unsubscribe function.
	Subscribe(topic string, handler Handler) func()

	// Close stops the bus. Subsequent publishes return ErrClosed.
	Close()
}
