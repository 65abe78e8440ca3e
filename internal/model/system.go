package model

import (
	"encoding/json"
	"fmt"
)

// SystemSpec describes a fixed installed DC array. Immutable once a
// calculation begins.
type SystemSpec struct {
	SizeKw            float64 `json:"size_kw"`
	SystemLossPercent float64 `json:"system_loss_percent"`
	TiltDeg           float64 `json:"tilt_deg"`
	AzimuthDeg        float64 `json:"azimuth_deg"`
}

// MonthlyBreakdownEntry is one row of the yearly production table.
type MonthlyBreakdownEntry struct {
	Month         string  `json:"month"`
	SunHours      float64 `json:"sun_hours"`
	ProductionKwh float64 `json:"production_kwh"`
	Revenue       float64 `json:"revenue"`
}

// PaybackPeriod is a tagged value: either a finite number of months or
// unreachable (zero annual revenue). Deliberately not a float so an
// "infinite" payback can never leak into arithmetic as ±Inf.
type PaybackPeriod struct {
	Months      int
	Unreachable bool
}

func FinitePayback(months int) PaybackPeriod { return PaybackPeriod{Months: months} }

func UnreachablePayback() PaybackPeriod { return PaybackPeriod{Unreachable: true} }

func (p PaybackPeriod) String() string {
	if p.Unreachable {
		return "unreachable"
	}
	return fmt.Sprintf("%d months", p.Months)
}

func (p PaybackPeriod) MarshalJSON() ([]byte, error) {
	if p.Unreachable {
		return json.Marshal(map[string]any{"unreachable": true})
	}
	return json.Marshal(map[string]any{"months": p.Months})
}

func (p *PaybackPeriod) UnmarshalJSON(b []byte) error {
	var m struct {
		Months      int  `json:"months"`
		Unreachable bool `json:"unreachable"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	p.Months = m.Months
	p.Unreachable = m.Unreachable
	if p.Unreachable {
		p.Months = 0
	}
	return nil
}

// FinancialViabilityResult is derived entirely from a SystemSpec, the price
// inputs and the climate table; it carries no hidden state.
type FinancialViabilityResult struct {
	TotalInvestment       float64                 `json:"total_investment"`
	TotalAnnualProduction float64                 `json:"total_annual_production"`
	AnnualRevenue         float64                 `json:"annual_revenue"`
	PaybackPeriod         PaybackPeriod           `json:"payback_period"`
	NetProfit25Years      float64                 `json:"net_profit_25_years"`
	MonthlyBreakdown      []MonthlyBreakdownEntry `json:"monthly_breakdown"`
}

// PanelCountInput feeds the consumption-based panel calculator.
type PanelCountInput struct {
	MonthlyBill       float64 `json:"monthly_bill"`
	KwhPrice          float64 `json:"kwh_price"`
	SunHours          float64 `json:"sun_hours"`
	PanelWattage      float64 `json:"panel_wattage"`
	SystemLossPercent float64 `json:"system_loss_percent"`
}

type PanelCountResult struct {
	TotalKwh       float64 `json:"total_kwh"`
	DailyKwh       float64 `json:"daily_kwh"`
	RequiredPanels int     `json:"required_panels"`
}

// AreaSizingInput feeds the roof-area calculator; the area comes from the
// map widget's drawn polygon.
type AreaSizingInput struct {
	AreaM2             float64 `json:"area_m2"`
	PanelWattage       float64 `json:"panel_wattage"`
	PanelAreaM2        float64 `json:"panel_area_m2"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

type AreaSizingResult struct {
	PanelCount int     `json:"panel_count"`
	SizeKw     float64 `json:"size_kw"`
}
