// ABOUTME: Classifier that asks an LLM for the intent label with keyword fallback.
// ABOUTME: Any provider failure or off-set label degrades to keyword rules.

package intent

import (
	"context"
	"log/slog"
	"strings"

	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/llm"
)

const classifyPrompt = `You classify travel-assistant chat messages.
Respond with exactly one of these labels and nothing else:
inspiration, place, poi, planning, booking, trip_monitor, day_of, multi_agent.

inspiration: general travel ideas or open-ended queries
place: questions about a specific destination
poi: attractions, sights, or activities
planning: itineraries, schedules, trip durations
booking: flights, hotels, tickets, reservations
trip_monitor: status, weather, delays, alerts
day_of: navigation, directions, immediate help
multi_agent: a full trip request naming a destination plus dates or duration`

// Classifier maps free text to an intent label.
type Classifier struct {
	provider llm.Provider
	logger   *slog.Logger
}

// NewClassifier creates a classifier. Provider may be nil, in which case
// only keyword rules are used.
func NewClassifier(provider llm.Provider, logger *slog.Logger) *Classifier {
	return &Classifier{provider: provider, logger: logger}
}

// Classify returns the intent label for message. It never fails: an LLM
// error or unrecognized label falls back to keyword matching.
func (c *Classifier) Classify(ctx context.Context, message string) string {
	if c.provider != nil {
		resp, err := c.provider.Chat(ctx, llm.ChatRequest{Messages: []llm.Message{
			{Role: "system", Content: classifyPrompt},
			{Role: "user", Content: message},
		}})
		if err != nil {
			c.logger.Warn("llm classification failed, using keyword fallback", "error", err)
		} else {
			label := strings.ToLower(strings.TrimSpace(resp.Content))
			if Valid(label) {
				return label
			}
			c.logger.Warn("llm returned unrecognized intent, using keyword fallback", "label", label)
		}
	}
	return classifyKeywords(message)
}
