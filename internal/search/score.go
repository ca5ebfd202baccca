// Package search ranks hotel listings against a free-text query using a
// fixed keyword vocabulary and price/location bonuses. Scoring is a pure
// function of its inputs: no I/O, no mutation of the candidate records.
package search

import (
	"sort"
	"strings"

	"smartstay/internal/domain"
)

// Keywords is the scoring vocabulary. A keyword only contributes when it
// appears in the query itself; matching listing text alone is not enough.
var Keywords = []string{
	"pool", "wifi", "parking", "beach", "ac", "air conditioning",
	"kitchen", "gym", "spa", "garden", "luxury", "budget", "family",
	"couple", "business", "mountain", "hill", "sea",
}

// MaxResults caps the result list regardless of candidate set size.
const MaxResults = 20

const (
	textPoints     = 20 // keyword in title or description
	amenityPoints  = 25 // keyword in an amenity tag
	locationPoints = 30 // first comma segment of location found in query
	pricePoints    = 15 // budget / luxury / mid price-band bonus
	maxScore       = 100
)

// Params are the caller-supplied search inputs. All fields are optional;
// an empty Params passes every candidate through unscored.
type Params struct {
	Query    string
	Location string
	MaxPrice *float64
	Amenity  string
}

// Score computes the relevance of one listing for a query. The result is
// deterministic and clamped to [0, 100]; contributions are all non-negative
// so no lower clamp is needed.
func Score(query string, l domain.Listing) int {
	q := strings.ToLower(query)
	title := strings.ToLower(l.Title)
	desc := strings.ToLower(l.Description)

	score := 0
	for _, kw := range Keywords {
		if !strings.Contains(q, kw) {
			continue
		}
		if strings.Contains(title, kw) || strings.Contains(desc, kw) {
			score += textPoints
		}
		if amenityContains(l.Amenities, kw) {
			score += amenityPoints
		}
	}

	// Only the first comma segment of the location counts here: a listing in
	// "Calangute, Goa" matches "calangute" but not "goa". Known asymmetry,
	// kept as-is.
	if area := firstSegment(l.Location); area != "" && strings.Contains(q, area) {
		score += locationPoints
	}

	if strings.Contains(q, "budget") && l.Price < 3000 {
		score += pricePoints
	}
	if strings.Contains(q, "luxury") && l.Price > 4000 {
		score += pricePoints
	}
	if strings.Contains(q, "mid") && l.Price >= 2500 && l.Price <= 4500 {
		score += pricePoints
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// Run applies the full search pipeline: structural filters, optional
// scoring and descending stable sort, amenity filter, then the size cap.
// It returns the result list and its length.
func Run(p Params, candidates []domain.Listing) ([]domain.ScoredListing, int) {
	working := make([]domain.ScoredListing, 0, len(candidates))
	loc := strings.ToLower(p.Location)
	for _, c := range candidates {
		if loc != "" && !strings.Contains(strings.ToLower(c.Location), loc) {
			continue
		}
		if p.MaxPrice != nil && c.Price > *p.MaxPrice {
			continue
		}
		working = append(working, domain.ScoredListing{Listing: c})
	}

	if p.Query != "" {
		for i := range working {
			s := Score(p.Query, working[i].Listing)
			working[i].MatchScore = &s
		}
		// stable: ties keep their input order
		sort.SliceStable(working, func(i, j int) bool {
			return *working[i].MatchScore > *working[j].MatchScore
		})
	}

	if p.Amenity != "" {
		a := strings.ToLower(p.Amenity)
		kept := working[:0]
		for _, w := range working {
			if strings.Contains(strings.ToLower(w.Description), a) || amenityContains(w.Amenities, a) {
				kept = append(kept, w)
			}
		}
		working = kept
	}

	if len(working) > MaxResults {
		working = working[:MaxResults]
	}
	return working, len(working)
}

func amenityContains(amenities []string, sub string) bool {
	for _, a := range amenities {
		if strings.Contains(strings.ToLower(a), sub) {
			return true
		}
	}
	return false
}

func firstSegment(location string) string {
	seg := location
	if i := strings.IndexByte(seg, ','); i >= 0 {
		seg = seg[:i]
	}
	return strings.TrimSpace(strings.ToLower(seg))
}
