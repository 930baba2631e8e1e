// ABOUTME: Runner subscribes agents to their request topics and publishes
// ABOUTME: correlated response envelopes on the shared response topic.

package agents

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/bus"
	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/dispatch"
)

// HandlerFunc produces a reply for one user message.
type HandlerFunc func(ctx context.Context, message string) dispatch.Reply

// Runner connects agent handlers to the bus.
type Runner struct {
	bus           bus.Bus
	responseTopic string
	logger        *slog.Logger
	unsubs        []func()
}

// NewRunner creates a Runner publishing responses to responseTopic.
func NewRunner(b bus.Bus, responseTopic string, logger *slog.Logger) *Runner {
	if responseTopic == "" {
		responseTopic = dispatch.DefaultResponseTopic
	}
	return &Runner{bus: b, responseTopic: responseTopic, logger: logger}
}

// Register subscribes an agent handler to a request topic.
func (r *Runner) Register(topic, name string, handler HandlerFunc) {
	unsub := r.bus.Subscribe(topic, func(ctx context.Context, data []byte) {
		var req bus.RequestEnvelope
		if err := json.Unmarshal(data, &req); err != nil || req.ID == "" {
			r.logger.Warn("agent dropping malformed request", "agent", name, "error", err)
			return
		}

		reply := handler(ctx, req.Params.Payload)
		if reply.Agent == "" {
			reply.Agent = name
		}

		replyJSON, err := json.Marshal(reply)
		if err != nil {
			r.logger.Error("agent marshaling reply", "agent", name, "error", err)
			return
		}
		stateJSON, err := json.Marshal(map[string]string{"last_agent": reply.Agent})
		if err != nil {
			r.logger.Error("agent marshaling context", "agent", name, "error", err)
			return
		}

		resp, err := json.Marshal(bus.ResponseEnvelope{
			ID:     req.ID,
			Result: bus.ResponseResult{Response: replyJSON, Context: stateJSON},
		})
		if err != nil {
			r.logger.Error("agent marshaling response envelope", "agent", name, "error", err)
			return
		}

		if err := r.bus.Publish(ctx, r.responseTopic, resp); err != nil {
			r.logger.Error("agent publishing response", "agent", name, "error", err)
		}
	})
	r.unsubs = append(r.unsubs, unsub)
	r.logger.Info("agent registered", "agent", name, "topic", topic)
}

// RegisterAll wires every built-in agent onto its route topic. The
// inspiration agent also serves the default route for unrecognized intents.
func (r *Runner) RegisterAll(routes dispatch.Routes) {
	r.Register(routes.Topic("inspiration"), "inspiration", Inspiration)
	r.Register(routes.Topic("place"), "place", PlaceInfo)
	r.Register(routes.Topic("poi"), "poi", PointsOfInterest)
	r.Register(routes.Topic("planning"), "planning", Planning)
	r.Register(routes.Topic("booking"), "booking", Booking)
	r.Register(routes.Topic("trip_monitor"), "trip_monitor", TripMonitor)
	r.Register(routes.Topic("day_of"), "day_of", DayOf)
	r.Register(routes.Topic("multi_agent"), "multi_agent", MultiAgent)
	if routes.Default != "" {
		r.Register(routes.Default, "inspiration", Inspiration)
	}
}

// Close unsubscribes all registered agents.
func (r *Runner) Close() {
	for _, unsub := range r.unsubs {
		unsub()
	}
	r.unsubs = nil
}
