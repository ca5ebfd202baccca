package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"smartstay/internal/domain"
	"smartstay/internal/search"
)

// candidateCap bounds how many rows we pull from storage before scoring.
const candidateCap = 500

type SearchResult struct {
	Count  int                    `json:"count"`
	Hotels []domain.ScoredListing `json:"hotels"`
}

type QueryService struct {
	repo     domain.ListingRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.ListingRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// SearchHotels fetches candidates with the structural filters pushed down to
// storage, then runs the relevance pipeline over them. Results are cached per
// parameter combination; entries age out via TTL since the keys are hashes.
func (s *QueryService) SearchHotels(ctx context.Context, p search.Params) (SearchResult, error) {
	key := searchKey(p)
	var out SearchResult
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	var loc *string
	if p.Location != "" {
		loc = &p.Location
	}
	cands, err := s.repo.FindListings(ctx, domain.ListingFilter{
		Location: loc,
		MaxPrice: p.MaxPrice,
		Limit:    candidateCap,
	})
	if err != nil {
		return SearchResult{}, err
	}

	hotels, count := search.Run(p, cands)
	out = SearchResult{Count: count, Hotels: hotels}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *QueryService) GetHotel(ctx context.Context, id int64) (domain.Listing, error) {
	key := fmt.Sprintf("hotel:%d", id)
	var l domain.Listing
	if ok, _ := s.cache.Get(ctx, key, &l); ok {
		return l, nil
	}
	l, err := s.repo.GetListing(ctx, id)
	if err != nil {
		return domain.Listing{}, err
	}
	_ = s.cache.Set(ctx, key, l, int(s.cacheTTL.Seconds()))
	return l, nil
}

func searchKey(p search.Params) string {
	mp := "-"
	if p.MaxPrice != nil {
		mp = fmt.Sprintf("%g", *p.MaxPrice)
	}
	sig := fmt.Sprintf("%s|%s|%s|%s", p.Query, p.Location, mp, p.Amenity)
	sum := sha1.Sum([]byte(sig))
	return "search:" + hex.EncodeToString(sum[:])
}
