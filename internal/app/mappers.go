package app

import (
	"strconv"
	"strings"

	"smartstay/internal/domain"
)

// Seed files come from exports of the old document store, so field names
// vary. The alias registry below is the single source of truth for which
// paths map onto each Listing field.

var listingAliases = map[string][]string{
	"id":          {"id", "_id", "listing_id", "listingId"},
	"title":       {"title", "name", "hotel_name", "hotelName"},
	"description": {"description", "desc", "about", "summary"},
	"location":    {"location", "address", "city"},
	"price":       {"price", "price_per_night", "pricePerNight", "rate"},
	"amenities":   {"amenities", "facilities", "tags"},
	"images":      {"images", "image", "photos"},
}

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func firstNonEmpty(m map[string]any, key string) string {
	for _, p := range listingAliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// firstFloat: number from several paths (float64/int/string like "2,500").
func firstFloat(m map[string]any, paths ...string) (float64, bool) {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func firstInt64(m map[string]any, paths ...string) (int64, bool) {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return int64(v), true
		case int:
			return int64(v), true
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// firstSliceStrings: accept []any holding strings or {url/src/name} objects.
func firstSliceStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		switch raw := lookupAny(m, k).(type) {
		case []any:
			out := make([]string, 0, len(raw))
			for _, it := range raw {
				switch t := it.(type) {
				case string:
					if t != "" {
						out = append(out, t)
					}
				case map[string]any:
					for _, field := range []string{"url", "src", "name"} {
						if s, ok := t[field].(string); ok && s != "" {
							out = append(out, s)
							break
						}
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		case string:
			if raw != "" {
				return []string{raw}
			}
		}
	}
	return nil
}

func mapListing(m map[string]any) domain.Listing {
	var l domain.Listing
	if id, ok := firstInt64(m, listingAliases["id"]...); ok {
		l.ID = id
	}
	l.Title = firstNonEmpty(m, "title")
	l.Description = firstNonEmpty(m, "description")
	l.Location = firstNonEmpty(m, "location")
	if p, ok := firstFloat(m, listingAliases["price"]...); ok {
		l.Price = p
	}
	l.Amenities = firstSliceStrings(m, listingAliases["amenities"]...)
	l.Images = firstSliceStrings(m, listingAliases["images"]...)
	return l
}
