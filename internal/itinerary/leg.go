package itinerary

import "time"

// ClockTime is a wall-clock reading with no date or zone attached
type ClockTime struct {
	Hour   int
	Minute int
}

// DecimalHours renders the reading as hours since local midnight
func (t ClockTime) DecimalHours() float64 {
	return float64(t.Hour) + float64(t.Minute)/60
}

// Leg is one flight segment, described entirely in the local civil
// date and time of each airport. The arrival may legitimately fall on
// an earlier calendar day than the departure when a leg crosses
// timezones, so no ordering is enforced here.
type Leg struct {
	DepAirport string
	ArrAirport string
	DepDate    time.Time // calendar date, midnight UTC
	ArrDate    time.Time
	DepTime    ClockTime
	ArrTime    ClockTime
}

// DepDateTime combines the departure date and time into a single
// zone-less instant (represented in UTC)
func (l Leg) DepDateTime() time.Time {
	return combine(l.DepDate, l.DepTime)
}

// ArrDateTime combines the arrival date and time the same way
func (l Leg) ArrDateTime() time.Time {
	return combine(l.ArrDate, l.ArrTime)
}

// DepTimestamp is the epoch-second key used to resolve the departure
// airport's offset for this specific leg
func (l Leg) DepTimestamp() int64 {
	return l.DepDateTime().Unix()
}

// ArrTimestamp is the epoch-second key for the arrival side
func (l Leg) ArrTimestamp() int64 {
	return l.ArrDateTime().Unix()
}

func combine(date time.Time, t ClockTime) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, time.UTC)
}

// Itinerary is an ordered sequence of legs; leg i's arrival connects
// to leg i+1's departure for layover accounting. Minimum length 1.
type Itinerary []Leg
