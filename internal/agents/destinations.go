// ABOUTME: Curated popular destination data served by the gateway's
// ABOUTME: destinations endpoint.

package agents

// Destination is a featured travel destination shown to new users.
type Destination struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Country    string   `json:"country"`
	Type       string   `json:"type"`
	Rating     float64  `json:"rating"`
	PriceRange string   `json:"price_range"`
	Highlights []string `json:"highlights"`
}

// PopularDestinations returns the curated destination list. The slice is
// freshly allocated so callers may modify it.
func PopularDestinations() []Destination {
	return []Destination{
		{
			ID:         "goa",
			Name:       "Goa",
			Country:    "India",
			Type:       "Beach",
			Rating:     4.8,
			PriceRange: "₹5,000-15,000",
			Highlights: []string{"Beaches", "Nightlife", "Portuguese Heritage"},
		},
		{
			ID:         "kerala",
			Name:       "Kerala",
			Country:    "India",
			Type:       "Nature",
			Rating:     4.9,
			PriceRange: "₹8,000-20,000",
			Highlights: []string{"Backwaters", "Hill Stations", "Ayurveda"},
		},
		{
			ID:         "rajasthan",
			Name:       "Rajasthan",
			Country:    "India",
			Type:       "Heritage",
			Rating:     4.7,
			PriceRange: "₹6,000-18,000",
			Highlights: []string{"Palaces", "Desert", "Culture"},
		},
	}
}
