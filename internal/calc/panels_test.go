package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/shamsdash/shams/internal/model"
)

func TestPanelsFromConsumption(t *testing.T) {
	res, err := PanelsFromConsumption(model.PanelCountInput{
		MonthlyBill:       240,
		KwhPrice:          0.12,
		SunHours:          5.5,
		PanelWattage:      450,
		SystemLossPercent: 15,
	})
	if err != nil {
		t.Fatalf("PanelsFromConsumption failed: %v", err)
	}
	if res.TotalKwh != 2000 {
		t.Errorf("total_kwh = %v, want 2000", res.TotalKwh)
	}
	if math.Abs(res.DailyKwh-2000.0/30) > 1e-9 {
		t.Errorf("daily_kwh = %v, want %v", res.DailyKwh, 2000.0/30)
	}
	// ceil(66.67 kWh * 1000 / (5.5 * 450 * 0.85 Wh/panel)) = ceil(31.69) = 32
	if res.RequiredPanels != 32 {
		t.Errorf("required_panels = %d, want 32", res.RequiredPanels)
	}
}

func TestPanelsFromConsumption_ExactDivision(t *testing.T) {
	// 600 kWh/month -> 20 kWh/day; one panel yields 5h*500W*0.8 = 2000 Wh/day.
	res, err := PanelsFromConsumption(model.PanelCountInput{
		MonthlyBill:       54,
		KwhPrice:          0.09,
		SunHours:          5,
		PanelWattage:      500,
		SystemLossPercent: 20,
	})
	if err != nil {
		t.Fatalf("PanelsFromConsumption failed: %v", err)
	}
	if res.RequiredPanels != 10 {
		t.Errorf("required_panels = %d, want exactly 10", res.RequiredPanels)
	}
}

func TestPanelsFromConsumption_AlwaysRoundsUp(t *testing.T) {
	base := model.PanelCountInput{
		MonthlyBill:       55,
		KwhPrice:          0.09,
		SunHours:          5,
		PanelWattage:      500,
		SystemLossPercent: 20,
	}
	res, err := PanelsFromConsumption(base)
	if err != nil {
		t.Fatalf("PanelsFromConsumption failed: %v", err)
	}
	// 611.11 kWh/month -> 20.37 kWh/day -> 10.19 panels -> never 10.
	if res.RequiredPanels != 11 {
		t.Errorf("required_panels = %d, want 11 (rounded up)", res.RequiredPanels)
	}
}

func TestPanelsFromConsumption_InvalidInput(t *testing.T) {
	valid := model.PanelCountInput{MonthlyBill: 100, KwhPrice: 0.1, SunHours: 5, PanelWattage: 450, SystemLossPercent: 10}

	cases := []struct {
		name   string
		mutate func(*model.PanelCountInput)
	}{
		{"zero bill", func(in *model.PanelCountInput) { in.MonthlyBill = 0 }},
		{"zero price", func(in *model.PanelCountInput) { in.KwhPrice = 0 }},
		{"zero sun-hours", func(in *model.PanelCountInput) { in.SunHours = 0 }},
		{"negative wattage", func(in *model.PanelCountInput) { in.PanelWattage = -450 }},
		{"loss over 99", func(in *model.PanelCountInput) { in.SystemLossPercent = 99.5 }},
		{"negative loss", func(in *model.PanelCountInput) { in.SystemLossPercent = -5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			if _, err := PanelsFromConsumption(in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}
