package itinerary

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyItinerary rejects a calculation with no legs
var ErrEmptyItinerary = errors.New("itinerary must contain at least one leg")

// ResolveError aborts a calculation: a required offset lookup for the
// named airport failed. No partial totals are produced.
type ResolveError struct {
	Airport string
	Err     error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolving offset for %s: %v", e.Airport, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// TimeoutError aborts a calculation: a leg's offset lookups did not
// complete within the wait budget.
type TimeoutError struct {
	Leg  int
	Wait time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("leg %d: timed out after %s waiting for timezone offsets", e.Leg, e.Wait)
}
