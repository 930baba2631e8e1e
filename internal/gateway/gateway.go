// ABOUTME: Gateway wires the bus, session store, classifier, dispatcher,
// ABOUTME: embedded agents, and WebSocket server into one process.

package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/agents"
	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/auth"
	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/bus"
	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/config"
	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/dispatch"
	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/intent"
	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/llm"
	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/session"
)

// Gateway orchestrates the concierge-gateway server components.
// It owns the HTTP server for WebSocket upgrades and the REST endpoints,
// plus the in-process bus the embedded agents ride.
type Gateway struct {
	config     *config.Config
	logger     *slog.Logger
	store      session.Store
	bus        *bus.Memory
	dispatcher *dispatch.Dispatcher
	classifier *intent.Classifier
	runner     *agents.Runner
	registry   *Registry
	orch       *Orchestrator
	verifier   *auth.JWTVerifier
	httpServer *http.Server
	boundAddr  string
}

// initStore creates the session store based on config and environment.
func initStore(cfg *config.Config) (session.Store, error) {
	dbPath := cfg.Database.Path
	if envPath := os.Getenv("CONCIERGE_DB_PATH"); envPath != "" {
		dbPath = envPath
	}

	s, err := session.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing store: %w", err)
	}
	return s, nil
}

// routesFromConfig builds the intent routing table, starting from the
// built-in defaults and overriding with any configured topics.
func routesFromConfig(cfg config.RoutesConfig) dispatch.Routes {
	routes := dispatch.DefaultRoutes()
	for in, topic := range cfg.Topics {
		routes.Topics[in] = topic
	}
	if cfg.Default != "" {
		routes.Default = cfg.Default
	}
	return routes
}

// newClassifierProvider builds the LLM provider for intent classification.
// Returns nil when no API key is configured; the classifier then relies
// on keyword matching alone.
func newClassifierProvider(cfg config.ClassifierConfig, logger *slog.Logger) llm.Provider {
	if cfg.APIKey == "" {
		logger.Info("no classifier API key configured, using keyword matching only")
		return nil
	}
	gemini := llm.NewGemini(cfg.APIKey, cfg.Model)
	return llm.NewBreakerProvider(gemini, llm.BreakerConfig{}, logger)
}

// New creates a Gateway from configuration. Call Run to start serving.
func New(cfg *config.Config, logger *slog.Logger) (*Gateway, error) {
	store, err := initStore(cfg)
	if err != nil {
		return nil, err
	}

	b := bus.NewMemory(logger.With("component", "bus"))

	responseTopic := cfg.Dispatch.ResponseTopic
	if responseTopic == "" {
		responseTopic = dispatch.DefaultResponseTopic
	}
	routes := routesFromConfig(cfg.Routes)

	dispatcher := dispatch.New(b, dispatch.Config{
		Routes:        routes,
		ResponseTopic: responseTopic,
		Timeout:       cfg.Dispatch.RequestTimeout,
	}, logger)

	runner := agents.NewRunner(b, responseTopic, logger.With("component", "agents"))
	runner.RegisterAll(routes)

	provider := newClassifierProvider(cfg.Classifier, logger.With("component", "classifier"))
	classifier := intent.NewClassifier(provider, logger)

	registry := NewRegistry(logger)
	orch := NewOrchestrator(registry, store, classifier, dispatcher, logger)

	g := &Gateway{
		config:     cfg,
		logger:     logger.With("component", "gateway"),
		store:      store,
		bus:        b,
		dispatcher: dispatcher,
		classifier: classifier,
		runner:     runner,
		registry:   registry,
		orch:       orch,
		verifier:   auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret)),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", g.handleHealth)
	mux.HandleFunc("GET /health/ready", g.handleReady)
	mux.HandleFunc("GET /ws", g.handleWS)
	mux.HandleFunc("GET /api/destinations/popular", g.handleDestinations)
	mux.HandleFunc("GET /api/sessions/{id}", g.handleSessionInfo)
	g.httpServer = &http.Server{Handler: mux}

	return g, nil
}

// BoundAddr returns the address the HTTP server bound to. Only valid
// after Run has started serving.
func (g *Gateway) BoundAddr() string { return g.boundAddr }

// startServer starts the HTTP server in a goroutine, returning an error channel.
func (g *Gateway) startServer(ln net.Listener) chan error {
	errCh := make(chan error, 1)

	go func() {
		g.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := g.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	return errCh
}

// waitForShutdownSignal waits for context cancellation or a server error.
func (g *Gateway) waitForShutdownSignal(ctx context.Context, errCh chan error) error {
	select {
	case <-ctx.Done():
		g.logger.Info("context canceled, initiating shutdown")
		return nil
	case err := <-errCh:
		g.logger.Error("server error", "error", err)
		return err
	}
}

// Run listens on the configured address and serves until the context is
// canceled, then shuts down gracefully.
func (g *Gateway) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", g.config.Server.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", g.config.Server.HTTPAddr, err)
	}
	return g.Serve(ctx, ln)
}

// Serve accepts connections on ln until the context is canceled.
func (g *Gateway) Serve(ctx context.Context, ln net.Listener) error {
	g.boundAddr = ln.Addr().String()

	errCh := g.startServer(ln)
	serverErr := g.waitForShutdownSignal(ctx, errCh)

	shutdownErr := g.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() intentionally since the original context is already canceled.
func (g *Gateway) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return g.Shutdown(ctx)
}

// appendCloseError appends an error with label if err is non-nil.
func appendCloseError(errs []error, label string, err error) []error {
	if err != nil {
		return append(errs, fmt.Errorf("%s: %w", label, err))
	}
	return errs
}

// Shutdown stops the HTTP server, closes all client connections, rejects
// outstanding dispatches, and releases the bus and store.
func (g *Gateway) Shutdown(ctx context.Context) error {
	g.logger.Info("shutting down gateway")

	var errs []error
	errs = appendCloseError(errs, "HTTP shutdown", g.httpServer.Shutdown(ctx))

	g.registry.CloseAll()
	g.dispatcher.Close()
	g.runner.Close()
	g.bus.Close()
	errs = appendCloseError(errs, "store close", g.store.Close())

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}

// originPatterns returns the allowed WebSocket origins. Localhost is
// always permitted for local development.
func (g *Gateway) originPatterns() []string {
	patterns := []string{
		"localhost",
		"localhost:*",
		"127.0.0.1",
		"127.0.0.1:*",
		"[::1]",
		"[::1]:*",
	}
	return append(patterns, g.config.Server.AllowedOrigins...)
}

// handleWS authenticates and upgrades a client connection, then serves
// its read loop until disconnect.
func (g *Gateway) handleWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	claims, err := g.verifier.Verify(token)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	userID := claims.Subject

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: g.originPatterns(),
	})
	if err != nil {
		g.logger.Warn("websocket accept failed", "user_id", userID, "error", err)
		return
	}

	c := newConn(userID, ws)
	c.sessionID = claims.SessionID
	g.registry.Register(c)
	g.logger.Info("client connected", "user_id", userID)

	go c.writeLoop()
	c.enqueue(Event{Type: EventConnected, UserID: userID, Timestamp: time.Now()})

	g.readLoop(r.Context(), c)

	c.close()
	g.registry.release(c)
	ws.Close(websocket.StatusNormalClosure, "")
	g.logger.Info("client disconnected", "user_id", userID)
}

func (g *Gateway) readLoop(ctx context.Context, c *Conn) {
	for {
		select {
		case <-c.done:
			return
		default:
		}

		var ev Event
		if err := wsjson.Read(ctx, c.ws, &ev); err != nil {
			return // connection closed or error
		}

		switch ev.Type {
		case EventMessage:
			sessionID := ev.SessionID
			if c.sessionID != "" {
				if sessionID != "" && sessionID != c.sessionID {
					g.logger.Warn("dropping message outside token session scope",
						"user_id", c.userID, "session_id", sessionID)
					continue
				}
				sessionID = c.sessionID
			}
			if sessionID == "" {
				sessionID = c.userID
			}
			go func() {
				// Orchestration outlives the read context so an in-flight
				// dispatch completes even if the client disconnects.
				_ = g.orch.HandleMessage(context.Background(), c.userID, sessionID, ev.Message)
			}()
		case EventJoin:
			g.registry.Join(c.userID, ev.Room)
		case EventLeave:
			g.registry.Leave(c.userID, ev.Room)
		default:
			g.logger.Debug("ignoring unknown event", "user_id", c.userID, "event", ev.Type)
		}
	}
}

// handleHealth returns 200 OK if the server is alive.
func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReady reports readiness along with the connected client count.
func (g *Gateway) handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "ready (%d connections)", g.registry.Count())
}
