// ABOUTME: Package agents hosts the embedded travel agents that answer
// ABOUTME: intent-routed requests from the bus with correlated responses.

// Package agents implements the downstream side of the dispatcher's
// request/response protocol. Each agent subscribes to its request topic,
// handles the message, and publishes a response envelope echoing the
// request's correlation ID on the shared response topic.
//
// The agents are deliberately self-contained: destination knowledge,
// suggestions, and booking options are static domain data, so the whole
// platform runs without any external service. The multi-agent handler
// composes place, planning, and booking output for complex trip requests.
package agents
