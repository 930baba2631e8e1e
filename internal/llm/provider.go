// ABOUTME: Provider interface and chat message types for LLM backends.
// ABOUTME: Kept minimal: single-shot chat completion, no streaming or tools.

package llm

import "context"

// Message is a single turn in a chat request.
// Role is "system", "user", or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest holds the conversation to complete.
type ChatRequest struct {
	Messages []Message `json:"messages"`
}

// ChatResponse is the model's completion.
type ChatResponse struct {
	Content string `json:"content"`
}

// Provider abstracts the LLM backend.
type Provider interface {
	// Chat sends a request and returns the complete response.
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
	// Name returns the provider name (e.g. "gemini").
	Name() string
}
