package domain

import "context"

type ListingRepository interface {
	// Write paths
	UpsertListing(ctx context.Context, l Listing) error
	DeleteListing(ctx context.Context, id int64) error

	// Read paths
	GetListing(ctx context.Context, id int64) (Listing, error)
	FindListings(ctx context.Context, f ListingFilter) ([]Listing, error)
}

// AssistClient forwards requests to the external AI travel service.
// The workflow engine behind it is opaque to this repository.
type AssistClient interface {
	PlanTrip(ctx context.Context, req map[string]any) (map[string]any, error)
	PlanSoloTrip(ctx context.Context, req map[string]any) (map[string]any, error)
	Chat(ctx context.Context, req map[string]any) (map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// ListingFilter is the structural predicate pushed down to storage:
// case-insensitive substring on location, inclusive ceiling on price.
type ListingFilter struct {
	Location *string
	MaxPrice *float64
	Limit    int
}
