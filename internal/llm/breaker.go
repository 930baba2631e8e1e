// ABOUTME: Circuit breaker wrapper around an LLM Provider.
// ABOUTME: Opens after consecutive failures so callers fail fast to fallback logic.

package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Breaker defaults.
const (
	defaultBreakerMaxFailures uint32        = 5
	defaultBreakerTimeout     time.Duration = 30 * time.Second
	defaultBreakerInterval    time.Duration = 60 * time.Second
)

// BreakerConfig configures the circuit breaker behavior.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures before the circuit opens.
	MaxFailures uint32 `yaml:"max_failures"`
	// Timeout is how long the circuit stays open before transitioning to half-open.
	Timeout time.Duration `yaml:"-"`
	// Interval is the cyclic period of the closed state for clearing failure counts.
	Interval time.Duration `yaml:"-"`
}

// BreakerProvider wraps a Provider with circuit breaker protection. When the
// wrapped provider fails repeatedly, the circuit opens and calls fail fast
// without reaching the backend, so the keyword classifier fallback takes
// over immediately instead of every message waiting out an HTTP timeout.
type BreakerProvider struct {
	inner   Provider
	breaker *gobreaker.CircuitBreaker[ChatResponse]
	logger  *slog.Logger
}

// NewBreakerProvider wraps inner with a circuit breaker.
// Zero-valued config fields fall back to defaults.
func NewBreakerProvider(inner Provider, cfg BreakerConfig, logger *slog.Logger) *BreakerProvider {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = defaultBreakerMaxFailures
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultBreakerTimeout
	}
	interval := cfg.Interval
	if interval == 0 {
		interval = defaultBreakerInterval
	}

	cb := gobreaker.NewCircuitBreaker[ChatResponse](gobreaker.Settings{
		Name:        "llm:" + inner.Name(),
		MaxRequests: 1, // allow 1 probe in half-open state
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &BreakerProvider{inner: inner, breaker: cb, logger: logger}
}

// Name returns the wrapped provider's name.
func (p *BreakerProvider) Name() string { return p.inner.Name() }

// Chat routes the call through the circuit breaker.
func (p *BreakerProvider) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	resp, err := p.breaker.Execute(func() (ChatResponse, error) {
		return p.inner.Chat(ctx, req)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return ChatResponse{}, fmt.Errorf("provider %q circuit open: %w", p.inner.Name(), err)
		}
		return ChatResponse{}, err
	}
	return resp, nil
}
