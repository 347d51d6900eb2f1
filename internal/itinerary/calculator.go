package itinerary

import (
	"context"
	"time"

	"github.com/flighttime-data/internal/airports"
	"github.com/flighttime-data/internal/common/logger"
)

const (
	// DefaultLegTimeout is the cumulative wait budget for one leg's
	// pair of offset lookups
	DefaultLegTimeout = 5 * time.Second

	// progressSteps is the number of ticks per leg beyond the leg's
	// starting value, so each leg emits progressSteps+1 ticks
	progressSteps = 10
)

// Result is the single outcome of one calculation. Err is set for the
// fatal failures (ResolveError, TimeoutError, ErrEmptyItinerary); the
// totals are only meaningful when Err is nil. Implausible marks a
// negative total flight time, which is still a success. Unresolved
// lists airport identifiers that were absent from the directory and
// therefore contributed no offset adjustment.
type Result struct {
	TotalFlightHours  float64
	TotalLayoverHours float64
	Implausible       bool
	Unresolved        []string
	Err               error
}

// TripHours is the combined trip duration
func (r Result) TripHours() float64 {
	return r.TotalFlightHours + r.TotalLayoverHours
}

// Calculator drives offset resolution for every leg of an itinerary
// and folds the legs, in order, into total flight and layover times.
// All resolved offsets live in bindings owned by the single run, keyed
// by (airport identity, timestamp); nothing is written onto shared
// Airport values, so concurrent calculations never contaminate each
// other.
type Calculator struct {
	directory  Directory
	resolver   Resolver
	logger     logger.Logger
	legTimeout time.Duration
}

func NewCalculator(directory Directory, resolver Resolver, log logger.Logger, legTimeout time.Duration) *Calculator {
	if legTimeout <= 0 {
		legTimeout = DefaultLegTimeout
	}
	return &Calculator{
		directory:  directory,
		resolver:   resolver,
		logger:     log,
		legTimeout: legTimeout,
	}
}

// offsetKey identifies one required resolution. The same airport needs
// separate entries for separate instants: its offset can differ across
// a DST transition between an arrival and a later departure.
type offsetKey struct {
	airport   string
	timestamp int64
}

type offsetSlot struct {
	airport string
	done    chan struct{}
	hours   float64
	err     error
}

// legSlots holds a leg's pending lookups; a nil slot means the airport
// was not found and the raw local time is used for that side
type legSlots struct {
	dep *offsetSlot
	arr *offsetSlot
}

// Calculate starts the calculation on its own goroutine and returns a
// channel that delivers exactly one Result, unless ctx is cancelled
// first, in which case nothing is delivered and pending lookups are
// abandoned. Progress ticks go to reporter (may be nil) in the range
// [0, 10*len(legs)], monotonically non-decreasing.
func (c *Calculator) Calculate(ctx context.Context, legs Itinerary, reporter ProgressReporter) <-chan Result {
	out := make(chan Result, 1)
	go c.run(ctx, legs, reporter, out)
	return out
}

func (c *Calculator) run(ctx context.Context, legs Itinerary, reporter ProgressReporter, out chan<- Result) {
	if len(legs) == 0 {
		c.deliver(ctx, out, Result{Err: ErrEmptyItinerary})
		return
	}

	// Abandon pending lookups when the run ends, however it ends
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.logger.Info("Starting itinerary calculation", "legs", len(legs))

	slots := make(map[offsetKey]*offsetSlot)
	perLeg := make([]legSlots, len(legs))
	var unresolved []string
	seen := make(map[string]bool)

	markUnresolved := func(ident string) {
		if !seen[ident] {
			seen[ident] = true
			unresolved = append(unresolved, ident)
		}
	}

	// Launch every distinct (airport, timestamp) lookup concurrently
	// before folding any leg
	for i, leg := range legs {
		if airport, ok := c.directory.Lookup(leg.DepAirport); ok {
			perLeg[i].dep = c.ensureSlot(ctx, slots, airport, leg.DepTimestamp())
		} else {
			markUnresolved(leg.DepAirport)
		}
		if airport, ok := c.directory.Lookup(leg.ArrAirport); ok {
			perLeg[i].arr = c.ensureSlot(ctx, slots, airport, leg.ArrTimestamp())
		} else {
			markUnresolved(leg.ArrAirport)
		}
	}

	if len(unresolved) > 0 {
		c.logger.Warn("Unknown airports, proceeding without offsets for those sides",
			"airports", unresolved)
	}

	var (
		totalFlight  float64
		totalLayover float64
		prevArrival  time.Time
		havePrev     bool
	)

	// Fold legs strictly in itinerary order; layover accounting
	// depends on it
	for i, leg := range legs {
		offsets, err := c.awaitLeg(ctx, i, perLeg[i])
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Debug("Calculation cancelled", "leg", i+1)
				return
			}
			c.logger.Error("Calculation aborted", "leg", i+1, "error", err)
			c.deliver(ctx, out, Result{Err: err})
			return
		}

		totalFlight += legFlightHours(leg, offsets)

		if havePrev {
			totalLayover += layoverHours(prevArrival, leg.DepDateTime())
		}
		prevArrival = leg.ArrDateTime()
		havePrev = true

		for tick := i * progressSteps; tick <= (i+1)*progressSteps; tick++ {
			if ctx.Err() != nil {
				return
			}
			if reporter != nil {
				reporter.Progress(tick)
			}
		}
	}

	result := Result{
		TotalFlightHours:  totalFlight,
		TotalLayoverHours: totalLayover,
		Implausible:       totalFlight < 0,
		Unresolved:        unresolved,
	}

	c.logger.Info("Itinerary calculation completed",
		"legs", len(legs),
		"flight_hours", result.TotalFlightHours,
		"layover_hours", result.TotalLayoverHours,
		"implausible", result.Implausible,
		"unresolved_airports", len(result.Unresolved))

	c.deliver(ctx, out, result)
}

func (c *Calculator) ensureSlot(ctx context.Context, slots map[offsetKey]*offsetSlot, airport *airports.Airport, timestamp int64) *offsetSlot {
	key := offsetKey{airport: airport.Label(), timestamp: timestamp}
	if slot, ok := slots[key]; ok {
		return slot
	}

	slot := &offsetSlot{airport: key.airport, done: make(chan struct{})}
	slots[key] = slot

	go func() {
		slot.hours, slot.err = c.resolver.Resolve(ctx, airport.Lat, airport.Lon, timestamp)
		close(slot.done)
	}()

	return slot
}

// awaitLeg waits for both of a leg's lookups under one shared timer,
// so the timeout budget covers the leg as a whole
func (c *Calculator) awaitLeg(ctx context.Context, legIndex int, slots legSlots) (legOffsets, error) {
	timer := time.NewTimer(c.legTimeout)
	defer timer.Stop()

	var offsets legOffsets

	for _, side := range []struct {
		slot  *offsetSlot
		hours *float64
	}{
		{slots.dep, &offsets.Dep},
		{slots.arr, &offsets.Arr},
	} {
		if side.slot == nil {
			continue
		}
		select {
		case <-side.slot.done:
			if side.slot.err != nil {
				return legOffsets{}, &ResolveError{Airport: side.slot.airport, Err: side.slot.err}
			}
			*side.hours = side.slot.hours
		case <-timer.C:
			return legOffsets{}, &TimeoutError{Leg: legIndex + 1, Wait: c.legTimeout}
		case <-ctx.Done():
			return legOffsets{}, ctx.Err()
		}
	}

	return offsets, nil
}

// deliver sends the single result unless the run was cancelled; the
// channel is buffered so a vanished consumer never blocks the worker
func (c *Calculator) deliver(ctx context.Context, out chan<- Result, result Result) {
	if ctx.Err() != nil {
		return
	}
	out <- result
}
