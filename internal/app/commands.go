package app

import (
	"context"
	"fmt"
	"strings"

	"smartstay/internal/domain"
)

type ListingService struct {
	repo  domain.ListingRepository
	cache domain.Cache
}

func NewListingService(r domain.ListingRepository, c domain.Cache) *ListingService {
	return &ListingService{repo: r, cache: c}
}

func validateListing(l domain.Listing) error {
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(l.Location) == "" {
		return fmt.Errorf("location is required")
	}
	if l.Price < 0 {
		return fmt.Errorf("price must be non-negative")
	}
	return nil
}

func (s *ListingService) SaveListing(ctx context.Context, l domain.Listing) error {
	if err := validateListing(l); err != nil {
		return err
	}
	if err := s.repo.UpsertListing(ctx, l); err != nil {
		return err
	}
	s.invalidateListing(ctx, l.ID)
	return nil
}

func (s *ListingService) DeleteListing(ctx context.Context, id int64) error {
	if err := s.repo.DeleteListing(ctx, id); err != nil {
		return err
	}
	s.invalidateListing(ctx, id)
	return nil
}

// Search cache entries are keyed by parameter hashes and cannot be
// enumerated; they expire via TTL instead of explicit invalidation.
func (s *ListingService) invalidateListing(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, fmt.Sprintf("hotel:%d", id))
}
