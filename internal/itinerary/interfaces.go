package itinerary

import (
	"context"

	"github.com/flighttime-data/internal/airports"
)

// Resolver supplies the UTC offset (hours, DST included) for a set of
// coordinates at a specific instant
type Resolver interface {
	Resolve(ctx context.Context, lat, lon float64, timestamp int64) (float64, error)
}

// Directory answers airport lookups by identifier
type Directory interface {
	Lookup(ident string) (*airports.Airport, bool)
}

// ProgressReporter receives discrete progress ticks during a
// calculation. Delivery is best effort; implementations must never
// block the calculation and must tolerate the consumer disappearing.
type ProgressReporter interface {
	Progress(value int)
}
