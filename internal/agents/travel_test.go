// ABOUTME: Tests for the built-in travel agent handlers.
// ABOUTME: Verifies branch selection, reply shape, and booking options.

package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspiration_BeachBranch(t *testing.T) {
	reply := Inspiration(context.Background(), "I want a beach holiday")

	assert.Contains(t, reply.Response, "coastline")
	assert.Contains(t, reply.Suggestions, "Goa beach paradise")
	assert.Greater(t, reply.Confidence, 0.0)
}

func TestInspiration_DefaultBranch(t *testing.T) {
	reply := Inspiration(context.Background(), "hello")

	assert.Contains(t, reply.Response, "travel concierge")
	assert.Len(t, reply.Suggestions, 6)
}

func TestPlaceInfo_KnownDestinations(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"tell me about Goa", "Portuguese"},
		{"what is Kerala like", "backwaters"},
		{"visiting Rajasthan", "palaces"},
	}

	for _, tt := range tests {
		reply := PlaceInfo(context.Background(), tt.message)
		assert.Contains(t, strings.ToLower(reply.Response), strings.ToLower(tt.want),
			"message %q", tt.message)
		assert.NotEmpty(t, reply.Suggestions)
	}
}

func TestPlaceInfo_UnknownDestination(t *testing.T) {
	reply := PlaceInfo(context.Background(), "somewhere nice")

	assert.Contains(t, reply.Response, "which destination")
}

func TestPlanning_DurationBranches(t *testing.T) {
	weekend := Planning(context.Background(), "plan a 3 day trip")
	assert.Contains(t, weekend.Response, "3-day")

	week := Planning(context.Background(), "I have a week off")
	assert.Contains(t, week.Response, "multi-stop")

	open := Planning(context.Background(), "help me plan")
	assert.Contains(t, open.Response, "travel plan")
}

func TestBooking_ReturnsOptions(t *testing.T) {
	reply := Booking(context.Background(), "book my trip")

	require.Len(t, reply.BookingOptions, 3)
	types := make([]string, 0, len(reply.BookingOptions))
	for _, opt := range reply.BookingOptions {
		types = append(types, opt.Type)
		assert.NotEmpty(t, opt.Option)
		assert.NotEmpty(t, opt.Price)
		assert.NotEmpty(t, opt.Availability)
	}
	assert.ElementsMatch(t, []string{"flight", "hotel", "activity"}, types)
}

func TestMultiAgent_ComposesPlan(t *testing.T) {
	reply := MultiAgent(context.Background(), "plan a trip to Goa for 10 days")

	assert.Contains(t, reply.Response, "Goa")
	assert.Contains(t, reply.Response, "10 days")
	assert.Contains(t, reply.Response, "Itinerary outline")
	// Base booking options plus the package and transport extras.
	assert.Len(t, reply.BookingOptions, 5)
	assert.Greater(t, reply.Confidence, 0.9)
}

func TestPopularDestinations(t *testing.T) {
	dests := PopularDestinations()

	require.Len(t, dests, 3)
	assert.Equal(t, "goa", dests[0].ID)
	for _, d := range dests {
		assert.Equal(t, "India", d.Country)
		assert.NotEmpty(t, d.Highlights)
		assert.Greater(t, d.Rating, 4.0)
	}
}
