// ABOUTME: Package session persists per-conversation context for the orchestrator.
// ABOUTME: One document per session: identity, turn history, and accumulated state.

// Package session owns the SessionContext documents the orchestrator borrows
// for the duration of one request cycle. Updates are merge-writes with
// last-write-wins semantics at the storage layer; there is no optimistic
// locking. SQLiteStore is the production implementation, MemoryStore backs
// tests and ephemeral deployments.
package session
