// ABOUTME: Package bus defines the message bus abstraction used between the
// ABOUTME: orchestrator and the travel agents, plus the wire envelope types.

// Package bus provides topic-based publish/subscribe messaging.
//
// The gateway treats the bus as an at-most-once delivery channel: there is
// no redelivery, no dead-lettering, and no backpressure beyond each
// subscriber's own handler. Request/response correlation is layered on top
// by the dispatch package using the envelope ID field.
//
// The Memory implementation runs in-process and carries the embedded travel
// agents. Anything satisfying the Bus interface (an external broker adapter,
// a test double) can be swapped in at construction time.
package bus
