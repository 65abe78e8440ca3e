package calc

import (
	"fmt"
	"math"

	"github.com/shamsdash/shams/internal/model"
)

// SolveStringConfiguration determines series and parallel panel counts for a
// target operating window, honoring the inverter's voltage and current
// ceilings. The decision is fully deterministic and local.
//
// Rounding is conservative: an exact half rounds down, so the configured
// array voltage never exceeds the desired rating through rounding alone.
func SolveStringConfiguration(in model.StringConfigInput, limits model.EquipmentLimits) (*model.StringConfig, error) {
	if in.PanelVoltageV <= 0 {
		return nil, fmt.Errorf("%w: panel_voltage_v must be positive, got %g", ErrInvalidInput, in.PanelVoltageV)
	}
	if in.PanelCurrentA <= 0 {
		return nil, fmt.Errorf("%w: panel_current_a must be positive, got %g", ErrInvalidInput, in.PanelCurrentA)
	}
	if in.DesiredSystemVoltageV <= 0 {
		return nil, fmt.Errorf("%w: desired_system_voltage_v must be positive, got %g", ErrInvalidInput, in.DesiredSystemVoltageV)
	}
	if in.DesiredSystemCurrentA <= 0 {
		return nil, fmt.Errorf("%w: desired_system_current_a must be positive, got %g", ErrInvalidInput, in.DesiredSystemCurrentA)
	}
	if limits.MaxSystemVoltageV <= 0 || limits.MaxInputCurrentA <= 0 {
		return nil, fmt.Errorf("%w: equipment limits must be positive", ErrInvalidInput)
	}
	if in.PanelVoltageV > limits.MaxSystemVoltageV {
		return nil, fmt.Errorf("%w: a single panel at %gV already exceeds the %gV equipment ceiling",
			ErrInvalidInput, in.PanelVoltageV, limits.MaxSystemVoltageV)
	}
	if in.PanelCurrentA > limits.MaxInputCurrentA {
		return nil, fmt.Errorf("%w: a single string at %gA already exceeds the %gA equipment ceiling",
			ErrInvalidInput, in.PanelCurrentA, limits.MaxInputCurrentA)
	}

	series := roundHalfDown(in.DesiredSystemVoltageV / in.PanelVoltageV)
	if series < 1 {
		series = 1
	}
	if max := int(limits.MaxSystemVoltageV / in.PanelVoltageV); series > max {
		series = max
	}

	parallel := roundHalfDown(in.DesiredSystemCurrentA / in.PanelCurrentA)
	if parallel < 1 {
		parallel = 1
	}
	if max := int(limits.MaxInputCurrentA / in.PanelCurrentA); parallel > max {
		parallel = max
	}

	return &model.StringConfig{
		PanelsPerString: series,
		ParallelStrings: parallel,
		ArrayVoltageV:   float64(series) * in.PanelVoltageV,
		ArrayCurrentA:   float64(parallel) * in.PanelCurrentA,
	}, nil
}

// roundHalfDown rounds to the nearest integer, breaking exact .5 ties
// downward.
func roundHalfDown(x float64) int {
	return int(math.Ceil(x - 0.5))
}
