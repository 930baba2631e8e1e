// ABOUTME: Package llm abstracts the language-model backend behind a narrow
// ABOUTME: Provider interface with a Gemini implementation and circuit breaker.

// Package llm provides the chat-completion client used by the intent
// classifier. The Provider interface keeps callers independent of the
// backend; Gemini talks to the generativelanguage HTTP API, and
// BreakerProvider wraps any Provider with a circuit breaker so a flaky
// backend fails fast instead of stalling every inbound message.
package llm
