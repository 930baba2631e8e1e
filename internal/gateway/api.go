// ABOUTME: REST endpoints for popular destinations and session info.
// ABOUTME: Small read-only JSON API alongside the WebSocket transport.

package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/agents"
	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleDestinations serves the curated popular destination list.
func (g *Gateway) handleDestinations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"destinations": agents.PopularDestinations(),
	})
}

// sessionInfoResponse is the JSON shape of the session info endpoint.
type sessionInfoResponse struct {
	SessionID    string    `json:"session_id"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
	LastIntent   string    `json:"last_intent,omitempty"`
}

// handleSessionInfo serves metadata about one session.
func (g *Gateway) handleSessionInfo(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	sess, err := g.store.Get(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		g.logger.Error("loading session info", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "loading session failed")
		return
	}

	writeJSON(w, http.StatusOK, sessionInfoResponse{
		SessionID:    sess.SessionID,
		UserID:       sess.UserID,
		CreatedAt:    sess.CreatedAt,
		MessageCount: len(sess.History),
		LastIntent:   sess.State["last_intent"],
	})
}
