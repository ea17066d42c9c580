package timeutil

import (
	"fmt"
	"sync"
	"time"
)

// locationCache stores loaded timezone locations.
var locationCache sync.Map

// UTC is the default portal timezone.
const UTC = "UTC"

// GetLocation returns a cached timezone location.
// An empty name is treated as UTC.
func GetLocation(name string) (*time.Location, error) {
	if name == "" {
		name = UTC
	}

	if loc, ok := locationCache.Load(name); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	locationCache.Store(name, loc)
	return loc, nil
}
