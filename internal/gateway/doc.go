// Package gateway orchestrates the concierge-gateway server components.
//
// # Overview
//
// The gateway package is the central coordinator of the concierge-gateway
// server. It owns the WebSocket transport, the connection registry, the
// per-message orchestration loop, and the HTTP API, wiring them to the
// session store, intent classifier, dispatcher, and embedded agents.
//
// # WebSocket Protocol
//
// Clients connect to GET /ws?token=<JWT>. The token's subject is the
// user ID; a token scoped to a session pins all messages on the
// connection to that session. One connection per user: a new connection
// supersedes and closes the previous one.
//
// Frames are JSON events:
//
//	{"type": "connected", "userId": "u1"}              // handshake ack
//	{"type": "message", "sessionId": "s1",
//	 "message": "plan a trip to Goa"}                  // inbound chat
//	{"type": "typing", "typing": true}                 // outbound indicator
//	{"type": "message", "sessionId": "s1",
//	 "reply": {...}}                                   // outbound reply
//	{"type": "join", "room": "deals"}                  // room membership
//	{"type": "broadcast", "room": "deals", ...}        // room fan-out
//
// # HTTP API
//
//   - GET /ws - WebSocket upgrade (JWT token query param)
//   - GET /api/destinations/popular - Curated destination list
//   - GET /api/sessions/{id} - Session metadata
//   - GET /health - Liveness check
//   - GET /health/ready - Readiness check
//
// # Orchestration
//
// Each inbound chat message runs through one pipeline: typing on, fetch or
// create the session, classify intent, dispatch to the routed agent,
// persist the merged session state, typing off, deliver. Messages are
// handled independently; a failure in one never affects others.
//
// # Lifecycle
//
// Start the gateway:
//
//	gw, err := gateway.New(cfg, logger)
//	ctx, cancel := context.WithCancel(context.Background())
//	go gw.Run(ctx)
//
// Graceful shutdown:
//
//	cancel()
//
// Run shuts down the HTTP server, closes client connections, rejects
// outstanding dispatches, and releases the bus and store.
//
// # Key Files
//
//   - gateway.go: Gateway struct, initialization, Run/Shutdown, WebSocket upgrade
//   - registry.go: user-to-connection map (send, broadcast, typing)
//   - orchestrator.go: per-message pipeline
//   - conn.go: connection wrapper with buffered write loop
//   - api.go: REST handlers
package gateway
