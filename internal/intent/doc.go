// ABOUTME: Package intent classifies free-text chat messages into the closed
// ABOUTME: set of travel intents that route to downstream agents.

// Package intent maps a user message to one intent label. Classification
// tries the configured LLM provider first and falls back to keyword
// matching when the provider is unavailable, errors, or returns a label
// outside the closed set. The keyword rules mirror the agents' own
// vocabularies, so the fallback alone keeps the gateway fully functional.
package intent
