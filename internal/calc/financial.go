package calc

import (
	"fmt"
	"math"

	"github.com/shamsdash/shams/internal/model"
)

// FinancialViability models one year of production and revenue for a fixed
// array at one of the known cities, and derives payback and 25-year profit.
// Pure: the only shared input is the read-only climate table.
func FinancialViability(climate model.ClimateTable, spec model.SystemSpec, loc model.Location, costPerKw, kwhPrice float64) (*model.FinancialViabilityResult, error) {
	entry, ok := climate.Lookup(loc)
	if !ok {
		return nil, fmt.Errorf("%w: unknown location %q", ErrInvalidInput, loc)
	}
	return FinancialViabilityFromSunHours(spec, entry.SunHours, costPerKw, kwhPrice)
}

// FinancialViabilityFromSunHours is the same model over an injected monthly
// sun-hours series (kWh/m²/day), e.g. historical irradiation fetched from the
// weather service.
func FinancialViabilityFromSunHours(spec model.SystemSpec, sunHours []float64, costPerKw, kwhPrice float64) (*model.FinancialViabilityResult, error) {
	if spec.SizeKw <= 0 {
		return nil, fmt.Errorf("%w: size_kw must be positive, got %g", ErrInvalidInput, spec.SizeKw)
	}
	if spec.SystemLossPercent < 0 || spec.SystemLossPercent > 99 {
		return nil, fmt.Errorf("%w: system_loss_percent must be in [0,99], got %g", ErrInvalidInput, spec.SystemLossPercent)
	}
	if costPerKw <= 0 {
		return nil, fmt.Errorf("%w: cost_per_kw must be positive, got %g", ErrInvalidInput, costPerKw)
	}
	if kwhPrice <= 0 {
		return nil, fmt.Errorf("%w: kwh_price must be positive, got %g", ErrInvalidInput, kwhPrice)
	}
	if len(sunHours) != 12 {
		return nil, fmt.Errorf("%w: got %d sun-hour entries, want 12", ErrInvalidInput, len(sunHours))
	}
	for i, h := range sunHours {
		if h < 0 || math.IsNaN(h) {
			return nil, fmt.Errorf("%w: sun-hours for %s must be non-negative, got %g", ErrInvalidInput, model.MonthNames[i], h)
		}
	}

	derate := 1 - spec.SystemLossPercent/100
	res := &model.FinancialViabilityResult{
		TotalInvestment:  costPerKw * spec.SizeKw,
		MonthlyBreakdown: make([]model.MonthlyBreakdownEntry, 0, 12),
	}
	for m := 0; m < 12; m++ {
		daily := spec.SizeKw * sunHours[m] * derate
		monthly := daily * float64(model.DaysInMonth[m])
		revenue := monthly * kwhPrice
		res.MonthlyBreakdown = append(res.MonthlyBreakdown, model.MonthlyBreakdownEntry{
			Month:         model.MonthNames[m],
			SunHours:      sunHours[m],
			ProductionKwh: monthly,
			Revenue:       revenue,
		})
		res.TotalAnnualProduction += monthly
		res.AnnualRevenue += revenue
	}

	// Zero revenue is a well-defined answer, not an error: payback is simply
	// never reached.
	if res.AnnualRevenue > 0 {
		res.PaybackPeriod = model.FinitePayback(int(math.Ceil(res.TotalInvestment / res.AnnualRevenue * 12)))
	} else {
		res.PaybackPeriod = model.UnreachablePayback()
	}
	res.NetProfit25Years = res.AnnualRevenue*25 - res.TotalInvestment
	return res, nil
}
