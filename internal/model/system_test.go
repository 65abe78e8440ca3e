package model

import (
	"encoding/json"
	"testing"
)

func TestPaybackPeriodJSON(t *testing.T) {
	b, err := json.Marshal(FinitePayback(84))
	if err != nil {
		t.Fatalf("marshal finite: %v", err)
	}
	var finite PaybackPeriod
	if err := json.Unmarshal(b, &finite); err != nil {
		t.Fatalf("unmarshal finite: %v", err)
	}
	if finite.Unreachable || finite.Months != 84 {
		t.Errorf("round-trip finite = %+v, want 84 months", finite)
	}

	b, err = json.Marshal(UnreachablePayback())
	if err != nil {
		t.Fatalf("marshal unreachable: %v", err)
	}
	var un PaybackPeriod
	if err := json.Unmarshal(b, &un); err != nil {
		t.Fatalf("unmarshal unreachable: %v", err)
	}
	if !un.Unreachable {
		t.Errorf("round-trip unreachable = %+v, tag lost", un)
	}
	if un.String() != "unreachable" {
		t.Errorf("String() = %q, want unreachable", un.String())
	}
}
