package domain

type Listing struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"` // conventionally "Area, Region"
	Price       float64  `json:"price"`    // currency units per night
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images,omitempty"`
}

// ScoredListing carries a relevance score only when the search had a
// free-text query; otherwise MatchScore stays nil and is omitted from JSON.
type ScoredListing struct {
	Listing
	MatchScore *int `json:"matchScore,omitempty"`
}
