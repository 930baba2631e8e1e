// ABOUTME: Reply and BookingOption types shared between agents and the dispatcher.
// ABOUTME: Also defines the fallback replies synthesized on publish failure or timeout.

package dispatch

import "fmt"

// BookingOption is a single bookable item in an agent reply.
type BookingOption struct {
	Type         string `json:"type"` // "flight", "hotel", "activity", "transport"
	Option       string `json:"option"`
	Price        string `json:"price"`
	Details      string `json:"details"`
	Availability string `json:"availability"`
}

// Reply is the user-facing payload an agent returns for one request.
type Reply struct {
	Response       string          `json:"response"`
	Agent          string          `json:"agent"`
	Confidence     float64         `json:"confidence"`
	Suggestions    []string        `json:"suggestions,omitempty"`
	BookingOptions []BookingOption `json:"booking_options,omitempty"`
}

// Result bundles an agent reply with the session state keys the agent
// wants merged back into the session context.
type Result struct {
	Reply Reply
	State map[string]string
}

// FallbackAgent is the Agent value on synthesized fallback replies.
const FallbackAgent = "fallback"

// timeoutFallback is returned when no correlated response arrived in time.
func timeoutFallback(intent string) *Result {
	return &Result{
		Reply: Reply{
			Response: fmt.Sprintf(
				"I'm sorry, I'm having trouble connecting to the %s service right now. Please try again in a moment.",
				serviceName(intent),
			),
			Agent:      FallbackAgent,
			Confidence: 0,
			Suggestions: []string{
				"Try again",
				"Ask me something else",
			},
		},
		State: map[string]string{"last_error": "timeout:" + intent},
	}
}

// publishFallback is returned when the request could not be published.
func publishFallback(intent string, err error) *Result {
	return &Result{
		Reply: Reply{
			Response: fmt.Sprintf(
				"I'm sorry, the %s service is unreachable right now (%v). Please try again in a moment.",
				serviceName(intent), err,
			),
			Agent:      FallbackAgent,
			Confidence: 0,
			Suggestions: []string{
				"Try again",
				"Ask me something else",
			},
		},
		State: map[string]string{"last_error": "publish:" + intent},
	}
}

// serviceName renders an intent label as a human-readable service name.
func serviceName(intent string) string {
	switch intent {
	case "trip_monitor":
		return "trip monitoring"
	case "day_of":
		return "on-trip assistance"
	case "multi_agent":
		return "trip planning"
	case "":
		return "travel"
	default:
		return intent
	}
}
