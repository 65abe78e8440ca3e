package calc

import (
	"fmt"
	"math"

	"github.com/shamsdash/shams/internal/model"
)

// SystemFromArea converts a drawn roof polygon into an installable array.
// Utilization covers walkways, shading setbacks and edge clearance. The panel
// count is floored: a roof is never overfilled.
func SystemFromArea(in model.AreaSizingInput) (*model.AreaSizingResult, error) {
	if in.AreaM2 <= 0 {
		return nil, fmt.Errorf("%w: area_m2 must be positive, got %g", ErrInvalidInput, in.AreaM2)
	}
	if in.PanelWattage <= 0 {
		return nil, fmt.Errorf("%w: panel_wattage must be positive, got %g", ErrInvalidInput, in.PanelWattage)
	}
	if in.PanelAreaM2 <= 0 {
		return nil, fmt.Errorf("%w: panel_area_m2 must be positive, got %g", ErrInvalidInput, in.PanelAreaM2)
	}
	if in.UtilizationPercent <= 0 || in.UtilizationPercent > 100 {
		return nil, fmt.Errorf("%w: utilization_percent must be in (0,100], got %g", ErrInvalidInput, in.UtilizationPercent)
	}

	usable := in.AreaM2 * in.UtilizationPercent / 100
	panels := int(math.Floor(usable / in.PanelAreaM2))

	return &model.AreaSizingResult{
		PanelCount: panels,
		SizeKw:     float64(panels) * in.PanelWattage / 1000,
	}, nil
}
