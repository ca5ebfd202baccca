package app

import (
	"context"
	"fmt"
)

// SeedService loads sample listings (exports from the old document store)
// into the repository.
type SeedService struct {
	listings *ListingService
}

func NewSeedService(l *ListingService) *SeedService {
	return &SeedService{listings: l}
}

// SeedListing maps one loosely-shaped payload onto a Listing and saves it.
// Records without a usable id are rejected so re-runs stay idempotent.
func (s *SeedService) SeedListing(ctx context.Context, payload map[string]any) (int64, error) {
	l := mapListing(payload)
	if l.ID == 0 {
		return 0, fmt.Errorf("seed record has no id (title=%q)", l.Title)
	}
	if err := s.listings.SaveListing(ctx, l); err != nil {
		return 0, fmt.Errorf("seed listing %d: %w", l.ID, err)
	}
	return l.ID, nil
}
