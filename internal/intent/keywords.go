// ABOUTME: Keyword-based intent classification used as the LLM fallback.
// ABOUTME: Rule order matters: complex queries and locations win over generic words.

package intent

import "strings"

var locations = []string{
	"goa", "kerala", "rajasthan", "himachal", "kashmir",
	"delhi", "mumbai", "bangalore",
}

var dateWords = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
	"today", "tomorrow", "next week", "next month",
	"26th", "27th", "28th", "29th", "30th", "31st",
}

var durationWords = []string{
	"days", "day", "weeks", "week", "months", "month",
}

var planningWords = []string{
	"plan", "itinerary", "schedule", "trip", "vacation", "days", "week",
}

var bookingWords = []string{
	"book", "reserve", "flight", "hotel", "ticket", "accommodation",
}

var poiWords = []string{
	"attraction", "visit", "see", "activity", "things to do",
	"sightseeing", "temple", "fort",
}

var monitorWords = []string{
	"status", "update", "weather", "delay", "cancel", "alert", "monitor",
}

var dayOfWords = []string{
	"navigate", "direction", "where", "help", "emergency", "now", "current",
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// classifyKeywords maps a message to an intent using keyword rules.
// Unmatched messages default to Inspiration.
func classifyKeywords(message string) string {
	lower := strings.ToLower(message)

	hasLocation := containsAny(lower, locations)
	hasDates := containsAny(lower, dateWords)
	hasDuration := containsAny(lower, durationWords)

	switch {
	case hasLocation && (hasDates || hasDuration):
		return MultiAgent
	case hasLocation:
		return Place
	case containsAny(lower, planningWords):
		return Planning
	case containsAny(lower, bookingWords):
		return Booking
	case containsAny(lower, poiWords):
		return POI
	case containsAny(lower, monitorWords):
		return TripMonitor
	case containsAny(lower, dayOfWords):
		return DayOf
	default:
		return Inspiration
	}
}
