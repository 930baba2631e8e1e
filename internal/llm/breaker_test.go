// ABOUTME: Tests for the circuit breaker provider wrapper.
// ABOUTME: Verifies pass-through, open-circuit fail-fast, and state transitions.

package llm

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	resp  ChatResponse
	err   error
	calls int
}

func (s *stubProvider) Chat(_ context.Context, _ ChatRequest) (ChatResponse, error) {
	s.calls++
	return s.resp, s.err
}

func (s *stubProvider) Name() string { return "stub" }

func TestBreakerProvider_PassThrough(t *testing.T) {
	inner := &stubProvider{resp: ChatResponse{Content: "planning"}}
	p := NewBreakerProvider(inner, BreakerConfig{}, slog.Default())

	resp, err := p.Chat(context.Background(), ChatRequest{})
	require.NoError(t, err)
	assert.Equal(t, "planning", resp.Content)
	assert.Equal(t, "stub", p.Name())
}

func TestBreakerProvider_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := &stubProvider{err: errors.New("backend down")}
	p := NewBreakerProvider(inner, BreakerConfig{MaxFailures: 2}, slog.Default())

	for i := 0; i < 2; i++ {
		_, err := p.Chat(context.Background(), ChatRequest{})
		require.Error(t, err)
	}
	callsBefore := inner.calls

	// Circuit is now open: the backend must not be reached again.
	_, err := p.Chat(context.Background(), ChatRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit open")
	assert.Equal(t, callsBefore, inner.calls)
}
