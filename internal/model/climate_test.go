package model

import "testing"

func TestDefaultClimate(t *testing.T) {
	table := DefaultClimate()
	if err := table.Validate(); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}
	for _, loc := range []Location{Amman, Zarqa, Irbid, Aqaba} {
		e, ok := table.Lookup(loc)
		if !ok {
			t.Fatalf("missing location %s", loc)
		}
		if len(e.SunHours) != 12 {
			t.Errorf("%s: %d sun-hour entries, want 12", loc, len(e.SunHours))
		}
		if e.Latitude == 0 || e.Longitude == 0 {
			t.Errorf("%s: missing coordinates", loc)
		}
	}
}

func TestClimateLookup_CaseInsensitive(t *testing.T) {
	table := DefaultClimate()
	if _, ok := table.Lookup("Amman"); !ok {
		t.Error("Lookup(\"Amman\") should match amman")
	}
	if _, ok := table.Lookup("  AQABA "); !ok {
		t.Error("Lookup should trim and lower-case")
	}
	if _, ok := table.Lookup("madaba"); ok {
		t.Error("unknown city should not resolve")
	}
}

func TestClimateValidate(t *testing.T) {
	bad := ClimateTable{
		"x": {SunHours: []float64{1, 2, 3}},
	}
	if err := bad.Validate(); err == nil {
		t.Error("short sun-hours slice should fail validation")
	}

	neg := ClimateTable{
		"x": {SunHours: []float64{1, 2, 3, 4, 5, -6, 7, 8, 9, 10, 11, 12}},
	}
	if err := neg.Validate(); err == nil {
		t.Error("negative sun-hours should fail validation")
	}

	if err := (ClimateTable{}).Validate(); err == nil {
		t.Error("empty table should fail validation")
	}
}
