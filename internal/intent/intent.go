// ABOUTME: Intent label constants and the closed label set.
// ABOUTME: Labels double as routing keys in the dispatcher's intent table.

package intent

// Intent labels. One per downstream agent, plus MultiAgent for complex
// queries that combine destination, dates, and duration.
const (
	Inspiration = "inspiration"
	Place       = "place"
	POI         = "poi"
	Planning    = "planning"
	Booking     = "booking"
	TripMonitor = "trip_monitor"
	DayOf       = "day_of"
	MultiAgent  = "multi_agent"
)

// Labels is the closed set of recognized intent labels.
var Labels = []string{
	Inspiration,
	Place,
	POI,
	Planning,
	Booking,
	TripMonitor,
	DayOf,
	MultiAgent,
}

// Valid reports whether label is in the closed set.
func Valid(label string) bool {
	for _, l := range Labels {
		if l == label {
			return true
		}
	}
	return false
}
