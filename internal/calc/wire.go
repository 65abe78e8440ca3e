package calc

import (
	"fmt"

	"github.com/shamsdash/shams/internal/model"
)

// copperResistivity is Ω·mm²/m for copper at 20°C.
const copperResistivity = 0.0175

// standardGauges lists the IEC standard copper cross-sections (mm²) in
// ascending order. Loaded once, never mutated.
var standardGauges = []float64{1.5, 2.5, 4, 6, 10, 16, 25, 35, 50, 70, 95, 120}

// StandardWireSizes returns a copy of the gauge table.
func StandardWireSizes() []float64 {
	out := make([]float64, len(standardGauges))
	copy(out, standardGauges)
	return out
}

func resistancePerMeter(crossSectionMM2 float64) float64 {
	return copperResistivity / crossSectionMM2
}

// WireSize picks the smallest standard conductor whose round-trip voltage
// drop stays within the allowed fraction of system voltage. The factor 2 on
// the distance accounts for the return conductor. When even the largest
// standard section fails the constraint the result is ErrSizeUnavailable,
// never the largest size passed off as sufficient.
func WireSize(in model.WireSizingInput) (*model.WireSizingResult, error) {
	if in.CurrentA <= 0 {
		return nil, fmt.Errorf("%w: current_a must be positive, got %g", ErrInvalidInput, in.CurrentA)
	}
	if in.VoltageV <= 0 {
		return nil, fmt.Errorf("%w: voltage_v must be positive, got %g", ErrInvalidInput, in.VoltageV)
	}
	if in.DistanceM <= 0 {
		return nil, fmt.Errorf("%w: distance_m must be positive, got %g", ErrInvalidInput, in.DistanceM)
	}
	if in.MaxVoltageDropPercent <= 0 || in.MaxVoltageDropPercent > 10 {
		return nil, fmt.Errorf("%w: max_voltage_drop_percent must be in (0,10], got %g", ErrInvalidInput, in.MaxVoltageDropPercent)
	}

	allowedDropV := in.VoltageV * in.MaxVoltageDropPercent / 100
	for _, size := range standardGauges {
		dropV := 2 * in.DistanceM * in.CurrentA * resistancePerMeter(size)
		if dropV <= allowedDropV {
			return &model.WireSizingResult{
				RecommendedWireSizeMM2: size,
				ActualVoltageDropV:     dropV,
				PowerLossW:             dropV * in.CurrentA,
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: %.2fV allowed drop infeasible at %gA over %gm; increase the allowed drop or reduce distance/current",
		ErrSizeUnavailable, allowedDropV, in.CurrentA, in.DistanceM)
}
