// ABOUTME: The built-in travel agent handlers: inspiration, place, poi,
// ABOUTME: planning, booking, trip monitoring, day-of help, and multi-agent.

package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/azadsimhab/travel-concierge-platform-sub000/internal/dispatch"
)

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Inspiration suggests travel ideas for open-ended queries.
func Inspiration(_ context.Context, message string) dispatch.Reply {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, "beach", "ocean", "sea", "coastal"):
		return dispatch.Reply{
			Response:   "India's coastline has something for every mood, from vibrant party beaches to quiet hidden coves. Here are a few coastal ideas to get you started.",
			Confidence: 0.92,
			Suggestions: []string{
				"Goa beach paradise",
				"Kerala backwaters cruise",
				"Andaman pristine islands",
				"Gokarna peaceful shores",
			},
		}
	case containsAny(lower, "mountain", "hill", "trek", "adventure"):
		return dispatch.Reply{
			Response:   "Mountain adventures await. From the Himalayas to the Western Ghats there are treks and hill retreats for every level of thrill-seeker.",
			Confidence: 0.90,
			Suggestions: []string{
				"Himachal Pradesh treks",
				"Kashmir valleys",
				"Uttarakhand peaks",
				"Hill station retreats",
			},
		}
	case containsAny(lower, "culture", "heritage", "history", "temple"):
		return dispatch.Reply{
			Response:   "India's cultural tapestry spans millennia: ancient temples, royal palaces, and living traditions in every region.",
			Confidence: 0.88,
			Suggestions: []string{
				"Rajasthan royal heritage",
				"Tamil Nadu temple tours",
				"Delhi historical sites",
				"Varanasi spiritual journey",
			},
		}
	default:
		return dispatch.Reply{
			Response:   "Welcome to your travel concierge. Whether you're after adventure, relaxation, or cultural immersion, tell me what you're dreaming of and I'll find the right destination.",
			Confidence: 0.85,
			Suggestions: []string{
				"Beach paradise getaway",
				"Mountain adventure trek",
				"Cultural heritage tour",
				"Wildlife safari",
				"Luxury spa retreat",
				"Budget backpacking",
			},
		}
	}
}

// PlaceInfo answers destination-specific questions.
func PlaceInfo(_ context.Context, message string) dispatch.Reply {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "goa"):
		return dispatch.Reply{
			Response:   "Goa blends Portuguese heritage with Indian warmth: golden beaches in the north, serene shores in the south, spice plantations inland, and lively nightlife throughout.",
			Confidence: 0.95,
			Suggestions: []string{
				"Best beaches in Goa",
				"Portuguese heritage sites",
				"Goa nightlife hotspots",
				"Spice plantation tours",
				"Water sports activities",
			},
		}
	case strings.Contains(lower, "kerala"):
		return dispatch.Reply{
			Response:   "Kerala is a tropical escape of emerald backwaters, misty hill stations, and quiet beaches. Houseboat cruises, Ayurvedic treatments, and endless tea plantations define the pace here.",
			Confidence: 0.93,
			Suggestions: []string{
				"Alleppey backwater cruises",
				"Munnar tea gardens",
				"Thekkady wildlife sanctuary",
				"Ayurvedic spa treatments",
				"Kerala cuisine experiences",
			},
		}
	case strings.Contains(lower, "rajasthan"):
		return dispatch.Reply{
			Response:   "Rajasthan is the land of kings: majestic palaces, golden deserts, and colorful bazaars. Camel safaris, palace stays, and folk performances bring the royal era to life.",
			Confidence: 0.94,
			Suggestions: []string{
				"Jaipur Pink City tour",
				"Udaipur City of Lakes",
				"Jaisalmer desert safari",
				"Jodhpur Blue City",
				"Rajasthani cultural shows",
			},
		}
	default:
		return dispatch.Reply{
			Response:   "Tell me which destination you have in mind and I'll share insider knowledge, hidden gems, and the best times to visit.",
			Confidence: 0.80,
			Suggestions: []string{
				"Goa beach paradise",
				"Kerala backwaters",
				"Rajasthan heritage",
				"Himachal mountains",
				"Kashmir valleys",
			},
		}
	}
}

// PointsOfInterest recommends attractions and activities.
func PointsOfInterest(_ context.Context, _ string) dispatch.Reply {
	return dispatch.Reply{
		Response:   "Here are attractions worth building a trip around, each showing a different side of the country.",
		Confidence: 0.88,
		Suggestions: []string{
			"Taj Mahal - symbol of eternal love",
			"Goa beaches - coastal paradise",
			"Kerala backwaters - serene waterways",
			"Rajasthan palaces - royal grandeur",
		},
	}
}

// Planning drafts itineraries sized to the requested duration.
func Planning(_ context.Context, message string) dispatch.Reply {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, "3", "three", "weekend"):
		return dispatch.Reply{
			Response:   "A 3-day weekend works best with one base and no long transfers: arrive and explore the city on day one, hit the main sights on day two, and keep day three relaxed before departure.",
			Confidence: 0.92,
			Suggestions: []string{
				"Day 1: Arrival & city exploration",
				"Day 2: Main attractions & activities",
				"Day 3: Relaxation & departure",
				"Customize itinerary",
			},
		}
	case containsAny(lower, "week", "7", "seven"):
		return dispatch.Reply{
			Response:   "A week opens up a multi-stop journey: two or three destinations, a mix of sights and downtime, and room for the unplanned discoveries that make a trip memorable.",
			Confidence: 0.90,
			Suggestions: []string{
				"Multi-city tour",
				"Adventure + relaxation combo",
				"Cultural deep dive",
				"Nature & wildlife focus",
			},
		}
	default:
		return dispatch.Reply{
			Response:   "I'll craft a travel plan around your preferences. How long do you have, and is this a quick getaway or an extended journey?",
			Confidence: 0.87,
			Suggestions: []string{
				"3-day weekend escape",
				"Week-long adventure",
				"Custom duration",
				"Multi-destination tour",
			},
		}
	}
}

// Booking surfaces bookable flights, hotels, and activities.
func Booking(_ context.Context, _ string) dispatch.Reply {
	return dispatch.Reply{
		Response:   "I found some options with good prices and availability. All include taxes and come with free cancellation.",
		Confidence: 0.91,
		Suggestions: []string{
			"Compare all options",
			"Check detailed reviews",
			"Book now with discount",
			"Save for later",
		},
		BookingOptions: []dispatch.BookingOption{
			{
				Type:         "flight",
				Option:       "Air India Express",
				Price:        "₹8,500",
				Details:      "Delhi to Goa, 2h 30m direct flight",
				Availability: "Available",
			},
			{
				Type:         "hotel",
				Option:       "Taj Exotica Resort",
				Price:        "₹12,000/night",
				Details:      "5-star beachfront luxury resort",
				Availability: "Few rooms left",
			},
			{
				Type:         "activity",
				Option:       "Spice Plantation Tour",
				Price:        "₹2,500",
				Details:      "Full day guided tour with traditional lunch",
				Availability: "Available",
			},
		},
	}
}

// TripMonitor reports trip status and alerts.
func TripMonitor(_ context.Context, _ string) dispatch.Reply {
	return dispatch.Reply{
		Response:   "Everything looks good: your flight is on time, the weather is clear, and all reservations are confirmed. I'll flag any changes.",
		Confidence: 0.96,
		Suggestions: []string{
			"Check flight status",
			"Weather updates",
			"Hotel confirmation",
			"Local alerts",
		},
	}
}

// DayOf handles in-trip navigation and immediate help.
func DayOf(_ context.Context, _ string) dispatch.Reply {
	return dispatch.Reply{
		Response:   "I'm here right now. Directions, nearby services, emergency contacts, or local recommendations — what do you need?",
		Confidence: 0.98,
		Suggestions: []string{
			"Get directions",
			"Find nearby services",
			"Emergency contacts",
			"Local recommendations",
		},
	}
}

// MultiAgent composes place, planning, and booking output for complex
// trip requests that name a destination plus dates or duration.
func MultiAgent(ctx context.Context, message string) dispatch.Reply {
	lower := strings.ToLower(message)

	destination := "your destination"
	if strings.Contains(lower, "goa") {
		destination = "Goa"
	}
	duration := "your stay"
	if strings.Contains(lower, "10 days") {
		duration = "10 days"
	}

	place := PlaceInfo(ctx, message)
	booking := Booking(ctx, message)

	response := fmt.Sprintf(`Here's a complete plan for %s over %s.

Destination: %s

Itinerary outline:
- Opening days: arrival, local exploration, and the signature sights
- Middle stretch: slower-paced culture, food, and nature
- Final days: activities, markets, and hidden gems

Booking options for %s are below.`,
		destination, duration, place.Response, duration)

	options := append([]dispatch.BookingOption{}, booking.BookingOptions...)
	options = append(options,
		dispatch.BookingOption{
			Type:         "activity",
			Option:       "Complete Experience Package",
			Price:        "₹15,000",
			Details:      fmt.Sprintf("Guided tours, cruises, and heritage visits for %s", duration),
			Availability: "Available - includes transport",
		},
		dispatch.BookingOption{
			Type:         "transport",
			Option:       "Rent a Scooter",
			Price:        "₹500/day",
			Details:      fmt.Sprintf("Explore %s freely for %s", destination, duration),
			Availability: "Available - helmets included",
		},
	)

	return dispatch.Reply{
		Response:   response,
		Confidence: 0.96,
		Suggestions: []string{
			"See complete day-by-day itinerary",
			"Compare hotel packages",
			"Book flights + hotel combo",
			"Add adventure activities",
			"Get local restaurant recommendations",
			"Check weather forecast",
		},
		BookingOptions: options,
	}
}
