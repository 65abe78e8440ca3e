package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Location identifies one of the supported cities.
type Location string

const (
	Amman Location = "amman"
	Zarqa Location = "zarqa"
	Irbid Location = "irbid"
	Aqaba Location = "aqaba"
)

// DaysInMonth is the fixed calendar used by the financial model. No leap-year
// handling: February is always 28 days.
var DaysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ClimateEntry holds the solar resource for one city: coordinates for
// external weather lookups plus twelve monthly averages of daily sun-hours
// (kWh/m²/day).
type ClimateEntry struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	SunHours  []float64 `json:"sun_hours"`
}

// ClimateTable maps a location to its climate entry. It is loaded once at
// process start and never mutated afterwards, so unsynchronized concurrent
// reads are safe.
type ClimateTable map[Location]ClimateEntry

// Lookup is case-insensitive on the city name.
func (t ClimateTable) Lookup(loc Location) (ClimateEntry, bool) {
	e, ok := t[Location(strings.ToLower(strings.TrimSpace(string(loc))))]
	return e, ok
}

// Validate checks the table invariant: every location carries exactly 12
// non-negative entries, one per calendar month.
func (t ClimateTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("climate table is empty")
	}
	for loc, e := range t {
		if len(e.SunHours) != 12 {
			return fmt.Errorf("climate entry %s: got %d sun-hour entries, want 12", loc, len(e.SunHours))
		}
		for i, h := range e.SunHours {
			if h < 0 {
				return fmt.Errorf("climate entry %s: negative sun-hours %g for %s", loc, h, MonthNames[i])
			}
		}
	}
	return nil
}

// DefaultClimate returns the built-in table for the four supported Jordanian
// cities. Values are long-term monthly averages of daily global horizontal
// irradiation.
func DefaultClimate() ClimateTable {
	return ClimateTable{
		Amman: {Latitude: 31.9539, Longitude: 35.9106,
			SunHours: []float64{3.2, 4.0, 5.1, 6.3, 7.3, 8.2, 8.0, 7.4, 6.3, 4.8, 3.5, 3.0}},
		Zarqa: {Latitude: 32.0728, Longitude: 36.0880,
			SunHours: []float64{3.3, 4.1, 5.2, 6.4, 7.4, 8.2, 8.1, 7.5, 6.4, 4.9, 3.6, 3.1}},
		Irbid: {Latitude: 32.5556, Longitude: 35.8500,
			SunHours: []float64{3.0, 3.8, 4.9, 6.1, 7.1, 8.0, 7.9, 7.3, 6.2, 4.6, 3.4, 2.9}},
		Aqaba: {Latitude: 29.5321, Longitude: 35.0063,
			SunHours: []float64{3.9, 4.7, 5.8, 6.9, 7.8, 8.5, 8.3, 7.8, 6.8, 5.4, 4.2, 3.6}},
	}
}

// LoadClimate reads a table override from a JSON file. City keys are
// lower-cased so deployments may spell them freely.
func LoadClimate(path string) (ClimateTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m map[string]ClimateEntry
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse climate table: %w", err)
	}
	t := make(ClimateTable, len(m))
	for k, v := range m {
		t[Location(strings.ToLower(strings.TrimSpace(k)))] = v
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
