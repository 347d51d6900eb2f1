package airports

import (
	"sort"
	"strings"
	"sync"
)

// Directory is the in-memory airport lookup table. Reads are safe for
// concurrent use by any number of in-flight calculations; a refresh
// swaps the whole table atomically so readers never observe a partial
// load.
type Directory struct {
	mu      sync.RWMutex
	byLabel map[string]*Airport
	sorted  []*Airport
}

func NewDirectory(airports []*Airport) *Directory {
	d := &Directory{}
	d.Swap(airports)
	return d
}

// Swap replaces the directory contents
func (d *Directory) Swap(airports []*Airport) {
	byLabel := make(map[string]*Airport, len(airports))
	sorted := make([]*Airport, len(airports))
	copy(sorted, airports)

	for _, a := range airports {
		byLabel[a.Label()] = a
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	d.mu.Lock()
	d.byLabel = byLabel
	d.sorted = sorted
	d.mu.Unlock()
}

// Lookup finds an airport by its label
func (d *Directory) Lookup(ident string) (*Airport, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.byLabel[ident]
	return a, ok
}

// All returns the full listing, sorted by name
func (d *Directory) All() []*Airport {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sorted
}

// Len reports the number of airports loaded
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sorted)
}

// Search returns up to limit airports whose label, city or country
// contains the query, case-insensitively. An empty query returns the
// head of the full listing.
func (d *Directory) Search(query string, limit int) []*Airport {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if limit <= 0 {
		limit = len(d.sorted)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	var matches []*Airport
	for _, a := range d.sorted {
		if query == "" ||
			strings.Contains(strings.ToLower(a.Label()), query) ||
			strings.Contains(strings.ToLower(a.City), query) ||
			strings.Contains(strings.ToLower(a.Country), query) {
			matches = append(matches, a)
			if len(matches) >= limit {
				break
			}
		}
	}
	return matches
}
