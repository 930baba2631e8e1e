// ABOUTME: Static intent-to-topic routing table with a default route.
// ABOUTME: Immutable process-wide configuration, never mutated at runtime.

package dispatch

// Routes maps intent labels to request topics. Unrecognized intents fall
// back to the Default topic.
type Routes struct {
	Topics  map[string]string
	Default string
}

// Topic returns the request topic for intent, or the default route.
func (r Routes) Topic(intent string) string {
	if topic, ok := r.Topics[intent]; ok {
		return topic
	}
	return r.Default
}

// DefaultRoutes returns the standard intent routing table.
func DefaultRoutes() Routes {
	return Routes{
		Topics: map[string]string{
			"inspiration":  "inspiration-agent-requests",
			"place":        "place-agent-requests",
			"poi":          "poi-agent-requests",
			"planning":     "planning-agent-requests",
			"booking":      "booking-agent-requests",
			"trip_monitor": "trip-monitor-agent-requests",
			"day_of":       "day-of-agent-requests",
			"multi_agent":  "multi-agent-requests",
		},
		Default: "general-agent-requests",
	}
}

// DefaultResponseTopic is the shared topic agents publish responses to.
const DefaultResponseTopic = "agent-responses"
