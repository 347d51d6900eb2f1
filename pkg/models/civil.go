package models

import (
	"fmt"
	"strings"
	"time"
)

// CivilDate is a calendar date with no timezone attached, as entered
// for one side of a flight leg
type CivilDate struct {
	time.Time
}

// civilDateFormats are tried in order; the d-MMM-yyyy form is the
// canonical one
var civilDateFormats = []string{
	"2-Jan-2006",
	"02-Jan-2006",
	"2006-01-02",
}

func (d *CivilDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		return nil
	}

	var parseErr error
	for _, format := range civilDateFormats {
		t, err := time.Parse(format, s)
		if err == nil {
			d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return nil
		}
		parseErr = err
	}

	return fmt.Errorf("unable to parse date %q: %w", s, parseErr)
}

func (d CivilDate) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", d.Time.Format("2-Jan-2006"))), nil
}

// CivilTime is a wall-clock time of day in HH:MM form
type CivilTime struct {
	Hour   int
	Minute int
}

func (t *CivilTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		return nil
	}

	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return fmt.Errorf("unable to parse time %q: %w", s, err)
	}

	t.Hour = parsed.Hour()
	t.Minute = parsed.Minute()
	return nil
}

func (t CivilTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%02d:%02d\"", t.Hour, t.Minute)), nil
}
