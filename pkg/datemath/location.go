package datemath

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// locations caches parsed tzdata; time.LoadLocation reads from disk on every call.
var locations = expirable.NewLRU[string, *time.Location](256, nil, time.Hour)

// LoadLocation is time.LoadLocation behind a small expiring cache.
func LoadLocation(name string) (*time.Location, error) {
	if loc, ok := locations.Get(name); ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	locations.Add(name, loc)
	return loc, nil
}

// LoadLocationOr returns the named location, or fallback when name is empty or invalid.
func LoadLocationOr(name, fallback string) (*time.Location, error) {
	if name != "" {
		if loc, err := LoadLocation(name); err == nil {
			return loc, nil
		}
	}
	return LoadLocation(fallback)
}
