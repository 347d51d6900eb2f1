package itinerary

import "time"

// legOffsets carries the resolved UTC offsets for one leg. A side
// whose airport could not be found keeps a zero offset, so the raw
// local reading is used unadjusted for that side.
type legOffsets struct {
	Dep float64
	Arr float64
}

// legFlightHours computes a leg's flight duration in hours. Both
// endpoints' local clock readings are shifted to what they would read
// at UTC+0 and the calendar-day delta supplies the 24-hour multiples.
// The value may be negative for inconsistent input; that is surfaced,
// not rejected, here.
func legFlightHours(leg Leg, offsets legOffsets) float64 {
	depValue := leg.DepTime.DecimalHours() - offsets.Dep
	arrValue := leg.ArrTime.DecimalHours() - offsets.Arr
	daysPassed := daysBetween(leg.DepDate, leg.ArrDate)
	return arrValue - depValue + 24*float64(daysPassed)
}

// layoverHours computes the gap between the previous leg's arrival and
// the current leg's departure from the two local date-times as entered,
// without re-applying offsets, in whole minutes converted to hours.
func layoverHours(prevArrival, departure time.Time) float64 {
	minutes := departure.Sub(prevArrival) / time.Minute
	return float64(minutes) / 60
}

// daysBetween is the calendar day difference between two dates; zero
// or negative values are legitimate inputs
func daysBetween(dep, arr time.Time) int {
	depMidnight := time.Date(dep.Year(), dep.Month(), dep.Day(), 0, 0, 0, 0, time.UTC)
	arrMidnight := time.Date(arr.Year(), arr.Month(), arr.Day(), 0, 0, 0, 0, time.UTC)
	return int(arrMidnight.Sub(depMidnight).Hours() / 24)
}
