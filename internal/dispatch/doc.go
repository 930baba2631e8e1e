// ABOUTME: Package dispatch turns the fire-and-forget bus into request/response calls.
// ABOUTME: Correlation IDs link each published request to its awaited response.

// Package dispatch implements the correlated request dispatcher. Each
// Dispatch call publishes an intent-routed request envelope with a fresh
// correlation ID, registers a pending entry, and blocks until the shared
// response subscriber resolves it or the per-dispatch timeout fires.
//
// Dispatcher failures never surface as errors to the orchestration loop:
// publish failures and timeouts are converted into synthesized fallback
// replies so a single agent outage degrades the conversation gracefully
// instead of crashing it.
//
// Per-request lifecycle: CREATED -> AWAITING_RESPONSE -> RESOLVED or
// TIMED_OUT. Terminal states remove the pending entry immediately; a
// correlation ID is never matched again once removed, so late or duplicate
// responses are dropped.
package dispatch
