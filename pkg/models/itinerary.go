package models

import (
	"fmt"
	"math"
)

// LegRequest is one flight segment as submitted by a client. Airports
// are referenced by their directory label; dates and times are local
// civil values at the respective airport.
type LegRequest struct {
	DepartureAirport string    `json:"departure_airport"`
	ArrivalAirport   string    `json:"arrival_airport"`
	DepartureDate    CivilDate `json:"departure_date"`
	ArrivalDate      CivilDate `json:"arrival_date"`
	DepartureTime    CivilTime `json:"departure_time"`
	ArrivalTime      CivilTime `json:"arrival_time"`
}

type CalculateRequest struct {
	Legs []LegRequest `json:"legs"`
}

// Validate checks the request shape; timezone and plausibility
// problems are the engine's concern, not validation failures
func (r *CalculateRequest) Validate() error {
	if len(r.Legs) == 0 {
		return fmt.Errorf("at least one leg is required")
	}
	for i, leg := range r.Legs {
		if leg.DepartureAirport == "" {
			return fmt.Errorf("leg %d: departure_airport is required", i+1)
		}
		if leg.ArrivalAirport == "" {
			return fmt.Errorf("leg %d: arrival_airport is required", i+1)
		}
		if leg.DepartureDate.IsZero() {
			return fmt.Errorf("leg %d: departure_date is required", i+1)
		}
		if leg.ArrivalDate.IsZero() {
			return fmt.Errorf("leg %d: arrival_date is required", i+1)
		}
	}
	return nil
}

type CalculateResponse struct {
	FlightHours        float64  `json:"flight_hours"`
	LayoverHours       float64  `json:"layover_hours"`
	TripHours          float64  `json:"trip_hours"`
	FlightTime         string   `json:"flight_time"`
	LayoverTime        string   `json:"layover_time"`
	TripTime           string   `json:"trip_time"`
	Implausible        bool     `json:"implausible,omitempty"`
	UnresolvedAirports []string `json:"unresolved_airports,omitempty"`
}

type AirportView struct {
	Label   string  `json:"label"`
	Name    string  `json:"name"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Code    string  `json:"code,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// FormatHours renders decimal hours as "12h 30min". The minute part is
// the rounded absolute remainder, so -2.5 renders as "-2h 30min".
func FormatHours(hours float64) string {
	whole := math.Trunc(hours)
	minutes := int(math.Round(math.Abs(hours-whole) * 60))
	if minutes == 60 {
		whole += math.Copysign(1, hours)
		minutes = 0
	}
	return fmt.Sprintf("%dh %dmin", int(whole), minutes)
}
