package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCivilDateUnmarshalFormats(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{`"5-Jun-2025"`, time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)},
		{`"05-Jun-2025"`, time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)},
		{`"2025-06-05"`, time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)},
		{`"31-Dec-2024"`, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		var d CivilDate
		if err := json.Unmarshal([]byte(tt.input), &d); err != nil {
			t.Errorf("%s: unexpected error: %v", tt.input, err)
			continue
		}
		if !d.Time.Equal(tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.input, tt.want, d.Time)
		}
	}
}

func TestCivilDateUnmarshalRejectsGarbage(t *testing.T) {
	var d CivilDate
	if err := json.Unmarshal([]byte(`"not a date"`), &d); err == nil {
		t.Fatal("expected an error for an unparsable date")
	}
}

func TestCivilDateMarshal(t *testing.T) {
	d := CivilDate{Time: time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `"5-Jun-2025"` {
		t.Errorf("unexpected marshalled date %s", b)
	}

	var zero CivilDate
	b, err = json.Marshal(zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "null" {
		t.Errorf("expected null for the zero date, got %s", b)
	}
}

func TestCivilTimeRoundTrip(t *testing.T) {
	var ct CivilTime
	if err := json.Unmarshal([]byte(`"09:05"`), &ct); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct.Hour != 9 || ct.Minute != 5 {
		t.Errorf("expected 09:05, got %02d:%02d", ct.Hour, ct.Minute)
	}

	b, err := json.Marshal(ct)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `"09:05"` {
		t.Errorf("unexpected marshalled time %s", b)
	}
}

func TestCivilTimeUnmarshalRejectsGarbage(t *testing.T) {
	var ct CivilTime
	if err := json.Unmarshal([]byte(`"25:99"`), &ct); err == nil {
		t.Fatal("expected an error for an invalid time")
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "0h 0min"},
		{2.5, "2h 30min"},
		{12.25, "12h 15min"},
		{-2.5, "-2h 30min"},
		{1.999, "2h 0min"},
		{0.5, "0h 30min"},
		{26.75, "26h 45min"},
	}

	for _, tt := range tests {
		if got := FormatHours(tt.hours); got != tt.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestCalculateRequestValidate(t *testing.T) {
	valid := CalculateRequest{Legs: []LegRequest{{
		DepartureAirport: "MUC — Munich Airport",
		ArrivalAirport:   "JFK — John F Kennedy International Airport",
		DepartureDate:    CivilDate{Time: time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)},
		ArrivalDate:      CivilDate{Time: time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)},
	}}}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected a valid request, got %v", err)
	}

	empty := CalculateRequest{}
	if err := empty.Validate(); err == nil {
		t.Error("expected an error for a request with no legs")
	}

	missing := valid
	missing.Legs = []LegRequest{{ArrivalAirport: "JFK"}}
	if err := missing.Validate(); err == nil {
		t.Error("expected an error for a leg with no departure airport")
	}
}
