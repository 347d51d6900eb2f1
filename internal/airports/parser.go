package airports

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/flighttime-data/internal/common/logger"
)

// Parser reads the airports data file: one airport per line, six
// comma-separated fields (name, city, country, IATA code, latitude,
// longitude). Field values may contain a comma followed by a space,
// so a line is split only on commas not followed by one.
type Parser struct {
	logger logger.Logger
}

func NewParser(logger logger.Logger) *Parser {
	return &Parser{logger: logger}
}

func (p *Parser) Parse(r io.Reader) ([]*Airport, error) {
	var (
		airports []*Airport
		skipped  int
		lineNo   int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		airport, err := parseLine(line)
		if err != nil {
			skipped++
			p.logger.Warn("Skipping malformed airport line", "line", lineNo, "error", err)
			continue
		}
		airports = append(airports, airport)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading airports data: %w", err)
	}

	if len(airports) == 0 {
		return nil, fmt.Errorf("no airports parsed")
	}

	p.logger.Info("Parsed airports data", "airports", len(airports), "skipped", skipped)
	return airports, nil
}

func parseLine(line string) (*Airport, error) {
	fields := splitFields(line)
	if len(fields) != 6 {
		return nil, fmt.Errorf("want 6 fields, got %d", len(fields))
	}

	lat, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude %q: %w", fields[4], err)
	}

	lon, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude %q: %w", fields[5], err)
	}

	code := unquote(fields[3])
	// Absent IATA codes appear as \N in the data file
	if strings.Contains(code, `\N`) {
		code = ""
	}

	return &Airport{
		Name:    unquote(fields[0]),
		City:    unquote(fields[1]),
		Country: unquote(fields[2]),
		Code:    code,
		Lat:     lat,
		Lon:     lon,
	}, nil
}

// splitFields splits on commas not followed by a space
func splitFields(line string) []string {
	var fields []string
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] == ',' && (i+1 >= len(line) || line[i+1] != ' ') {
			fields = append(fields, line[start:i])
			start = i + 1
		}
	}
	fields = append(fields, line[start:])
	return fields
}

func unquote(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}
