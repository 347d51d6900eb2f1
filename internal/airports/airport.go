package airports

import "strconv"

// Airport holds the identity and location of one airport. All fields
// are immutable after load; per-calculation timezone offsets are never
// stored here.
type Airport struct {
	Name    string
	City    string
	Country string
	Code    string // IATA code, may be empty
	Lat     float64
	Lon     float64
}

// Label is the canonical identifier airports are looked up by:
// the IATA code and name when a code exists, the bare name otherwise.
func (a *Airport) Label() string {
	if a.Code == "" {
		return a.Name
	}
	return a.Code + " — " + a.Name
}

// Location renders the coordinates as "lat,lon" for the timezone API
func (a *Airport) Location() string {
	return strconv.FormatFloat(a.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(a.Lon, 'f', -1, 64)
}
