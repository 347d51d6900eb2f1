package airports

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/flighttime-data/internal/common/logger"
)

func testLogger() logger.Logger {
	return logger.New(zerolog.Disabled)
}

func TestParseWellFormedLines(t *testing.T) {
	data := `"Goroka Airport","Goroka","Papua New Guinea","GKA",-6.081689834590001,145.391998291
"Madang Airport","Madang","Papua New Guinea","MAG",-5.20707988739,145.789001465
`

	airports, err := NewParser(testLogger()).Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(airports) != 2 {
		t.Fatalf("expected 2 airports, got %d", len(airports))
	}

	first := airports[0]
	if first.Name != "Goroka Airport" {
		t.Errorf("expected name Goroka Airport, got %q", first.Name)
	}
	if first.City != "Goroka" {
		t.Errorf("expected city Goroka, got %q", first.City)
	}
	if first.Country != "Papua New Guinea" {
		t.Errorf("expected country Papua New Guinea, got %q", first.Country)
	}
	if first.Code != "GKA" {
		t.Errorf("expected code GKA, got %q", first.Code)
	}
	if first.Lat >= 0 || first.Lon <= 0 {
		t.Errorf("unexpected coordinates: %v, %v", first.Lat, first.Lon)
	}
}

func TestParseCommaInsideField(t *testing.T) {
	// Field values may contain ", " which must not split the line
	data := `"Brussels, National Airport","Brussels","Belgium","BRU",50.9014015198,4.48443984985`

	airports, err := NewParser(testLogger()).Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(airports) != 1 {
		t.Fatalf("expected 1 airport, got %d", len(airports))
	}
	if airports[0].Name != "Brussels, National Airport" {
		t.Errorf("expected the comma to be kept in the name, got %q", airports[0].Name)
	}
}

func TestParseMissingCodeBecomesEmpty(t *testing.T) {
	data := `"Someplace Strip","Someplace","Nowhere","\N",10.5,20.5`

	airports, err := NewParser(testLogger()).Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if airports[0].Code != "" {
		t.Errorf("expected an empty code for \\N, got %q", airports[0].Code)
	}
	if airports[0].Label() != "Someplace Strip" {
		t.Errorf("expected the bare name as label, got %q", airports[0].Label())
	}
}

func TestParseSkipsMalformedLines(t *testing.T) {
	data := `"Good Airport","City","Country","GDA",1.5,2.5
garbage line with no structure
"Bad Coords","City","Country","BAD",not-a-number,2.5

"Another Good","City","Country","AGD",3.5,4.5
`

	airports, err := NewParser(testLogger()).Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(airports) != 2 {
		t.Fatalf("expected 2 airports with malformed lines skipped, got %d", len(airports))
	}
}

func TestParseEmptyInputFails(t *testing.T) {
	if _, err := NewParser(testLogger()).Parse(strings.NewReader("")); err == nil {
		t.Fatal("expected an error for input with no airports")
	}
}

func TestAirportLabel(t *testing.T) {
	withCode := &Airport{Name: "Munich Airport", Code: "MUC"}
	if got := withCode.Label(); got != "MUC — Munich Airport" {
		t.Errorf("unexpected label %q", got)
	}

	withoutCode := &Airport{Name: "Tiny Field"}
	if got := withoutCode.Label(); got != "Tiny Field" {
		t.Errorf("unexpected label %q", got)
	}
}

func TestAirportLocation(t *testing.T) {
	a := &Airport{Lat: 48.353802, Lon: 11.7861}
	if got := a.Location(); got != "48.353802,11.7861" {
		t.Errorf("unexpected location %q", got)
	}
}
