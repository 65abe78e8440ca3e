package calc

import (
	"fmt"
	"math"

	"github.com/shamsdash/shams/internal/model"
)

// PanelsFromConsumption converts a monthly electricity bill into the number
// of panels needed to cover it. The month is approximated as 30 days; this is
// a deliberate simplification of the consumption calculator, distinct from
// the financial model's exact per-month calendar. The panel count always
// rounds up so the system is never under-provisioned.
func PanelsFromConsumption(in model.PanelCountInput) (*model.PanelCountResult, error) {
	if in.MonthlyBill <= 0 {
		return nil, fmt.Errorf("%w: monthly_bill must be positive, got %g", ErrInvalidInput, in.MonthlyBill)
	}
	if in.KwhPrice <= 0 {
		return nil, fmt.Errorf("%w: kwh_price must be positive, got %g", ErrInvalidInput, in.KwhPrice)
	}
	if in.SunHours <= 0 {
		return nil, fmt.Errorf("%w: sun_hours must be positive, got %g", ErrInvalidInput, in.SunHours)
	}
	if in.PanelWattage <= 0 {
		return nil, fmt.Errorf("%w: panel_wattage must be positive, got %g", ErrInvalidInput, in.PanelWattage)
	}
	if in.SystemLossPercent < 0 || in.SystemLossPercent > 99 {
		return nil, fmt.Errorf("%w: system_loss_percent must be in [0,99], got %g", ErrInvalidInput, in.SystemLossPercent)
	}

	totalKwh := in.MonthlyBill / in.KwhPrice
	dailyKwh := totalKwh / 30

	// Daily Wh delivered by one panel after derating.
	perPanelWh := in.SunHours * in.PanelWattage * (1 - in.SystemLossPercent/100)
	panels := int(math.Ceil(dailyKwh * 1000 / perPanelWh))

	return &model.PanelCountResult{
		TotalKwh:       totalKwh,
		DailyKwh:       dailyKwh,
		RequiredPanels: panels,
	}, nil
}
