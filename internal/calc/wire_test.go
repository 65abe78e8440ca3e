package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/shamsdash/shams/internal/model"
)

func TestWireSize(t *testing.T) {
	res, err := WireSize(model.WireSizingInput{
		CurrentA:              25,
		VoltageV:              600,
		DistanceM:             30,
		MaxVoltageDropPercent: 2,
	})
	if err != nil {
		t.Fatalf("WireSize failed: %v", err)
	}
	// 2*30*25*0.0175/A <= 12 V requires A >= 2.1875 -> 2.5 mm².
	if res.RecommendedWireSizeMM2 != 2.5 {
		t.Errorf("recommended size = %v mm², want 2.5", res.RecommendedWireSizeMM2)
	}
	if res.ActualVoltageDropV > 12 {
		t.Errorf("voltage drop = %v V, must be <= 12 (2%% of 600V)", res.ActualVoltageDropV)
	}
	if math.Abs(res.ActualVoltageDropV-10.5) > 1e-9 {
		t.Errorf("voltage drop = %v V, want 10.5", res.ActualVoltageDropV)
	}
	if math.Abs(res.PowerLossW-262.5) > 1e-9 {
		t.Errorf("power loss = %v W, want 262.5", res.PowerLossW)
	}
}

func TestWireSize_SmallestSufficientSize(t *testing.T) {
	// A short low-current run fits the smallest standard section.
	res, err := WireSize(model.WireSizingInput{CurrentA: 5, VoltageV: 230, DistanceM: 10, MaxVoltageDropPercent: 3})
	if err != nil {
		t.Fatalf("WireSize failed: %v", err)
	}
	if res.RecommendedWireSizeMM2 != 1.5 {
		t.Errorf("recommended size = %v mm², want 1.5", res.RecommendedWireSizeMM2)
	}
}

func TestWireSize_MonotonicInDistance(t *testing.T) {
	prev := 0.0
	for _, d := range []float64{5, 10, 20, 40, 80, 160, 320} {
		res, err := WireSize(model.WireSizingInput{CurrentA: 25, VoltageV: 600, DistanceM: d, MaxVoltageDropPercent: 2})
		if err != nil {
			t.Fatalf("distance %v: %v", d, err)
		}
		if res.RecommendedWireSizeMM2 < prev {
			t.Errorf("distance %v: size %v smaller than %v at shorter run", d, res.RecommendedWireSizeMM2, prev)
		}
		prev = res.RecommendedWireSizeMM2
	}
}

func TestWireSize_Infeasible(t *testing.T) {
	// 12 V circuit over 500 m: even 120 mm² drops far more than 10%.
	_, err := WireSize(model.WireSizingInput{CurrentA: 40, VoltageV: 12, DistanceM: 500, MaxVoltageDropPercent: 10})
	if !errors.Is(err, ErrSizeUnavailable) {
		t.Errorf("err = %v, want ErrSizeUnavailable", err)
	}
}

func TestWireSize_InvalidInput(t *testing.T) {
	valid := model.WireSizingInput{CurrentA: 25, VoltageV: 600, DistanceM: 30, MaxVoltageDropPercent: 2}

	cases := []struct {
		name   string
		mutate func(*model.WireSizingInput)
	}{
		{"zero current", func(in *model.WireSizingInput) { in.CurrentA = 0 }},
		{"negative voltage", func(in *model.WireSizingInput) { in.VoltageV = -600 }},
		{"zero distance", func(in *model.WireSizingInput) { in.DistanceM = 0 }},
		{"zero drop", func(in *model.WireSizingInput) { in.MaxVoltageDropPercent = 0 }},
		{"drop over 10", func(in *model.WireSizingInput) { in.MaxVoltageDropPercent = 10.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			if _, err := WireSize(in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestStandardWireSizes_Ascending(t *testing.T) {
	sizes := StandardWireSizes()
	if len(sizes) == 0 {
		t.Fatal("gauge table is empty")
	}
	for i := 1; i < len(sizes); i++ {
		if sizes[i] <= sizes[i-1] {
			t.Errorf("gauge table not ascending at %d: %v after %v", i, sizes[i], sizes[i-1])
		}
	}
}
