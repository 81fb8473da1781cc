// Package location holds the static state/city reference data used by
// location pickers, catalog validation and profile validation.
package location

import (
	"marketplace/pkg/sanitizer"
	"sort"
	"strings"
)

type CityMatch struct {
	City  string `json:"city"`
	State string `json:"state"`
}

type SearchResult struct {
	States []string    `json:"states"`
	Cities []CityMatch `json:"cities"`
}

// Directory is a read-only lookup table of states and their cities.
// It is safe for concurrent use.
type Directory struct {
	states []string
	cities map[string][]string
	byKey  map[string]string
}

// NewDirectory builds a directory from a state -> cities table.
func NewDirectory(table map[string][]string) *Directory {
	d := &Directory{
		cities: make(map[string][]string, len(table)),
		byKey:  make(map[string]string, len(table)),
	}
	for state, cities := range table {
		d.states = append(d.states, state)
		sorted := append([]string(nil), cities...)
		sort.Strings(sorted)
		d.cities[state] = sorted
		d.byKey[key(state)] = state
	}
	sort.Strings(d.states)
	return d
}

// Nigeria returns the directory of Nigerian states and the FCT.
func Nigeria() *Directory {
	return NewDirectory(nigeria)
}

// States returns every state name, sorted.
func (d *Directory) States() []string {
	return append([]string(nil), d.states...)
}

// Cities returns the cities of a state. The state name is matched
// case-insensitively.
func (d *Directory) Cities(state string) ([]string, bool) {
	canonical, ok := d.byKey[key(state)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), d.cities[canonical]...), true
}

// CanonicalState returns the state's spelling as stored in the directory.
func (d *Directory) CanonicalState(state string) (string, bool) {
	canonical, ok := d.byKey[key(state)]
	return canonical, ok
}

// Contains reports whether city belongs to state. Both are matched
// case-insensitively.
func (d *Directory) Contains(state, city string) bool {
	_, ok := d.CanonicalCity(state, city)
	return ok
}

// CanonicalCity returns the city's spelling as stored under state.
func (d *Directory) CanonicalCity(state, city string) (string, bool) {
	canonical, ok := d.byKey[key(state)]
	if !ok {
		return "", false
	}
	want := key(city)
	for _, c := range d.cities[canonical] {
		if key(c) == want {
			return c, true
		}
	}
	return "", false
}

// Search returns the states and cities whose names contain query,
// case-insensitively. Cities are ordered by state then city.
func (d *Directory) Search(query string) SearchResult {
	result := SearchResult{States: []string{}, Cities: []CityMatch{}}
	q := key(query)
	if q == "" {
		return result
	}

	for _, state := range d.states {
		if strings.Contains(key(state), q) {
			result.States = append(result.States, state)
		}
		for _, city := range d.cities[state] {
			if strings.Contains(key(city), q) {
				result.Cities = append(result.Cities, CityMatch{City: city, State: state})
			}
		}
	}
	return result
}

func key(s string) string {
	return strings.ToLower(sanitizer.TrimAndNormalize(s))
}
