package explanation

import "fmt"

// FallbackText renders a fixed template over the same numeric values a
// provider would have narrated. Same facts, same string, every time.
func FallbackText(f Facts) string {
	v := f.Values
	switch f.Calculator {
	case "financial":
		if f.Labels["payback"] == "unreachable" {
			return fmt.Sprintf("A %.1f kWp system producing about %.0f kWh per year generates no revenue at the given tariff, so the %.0f JOD investment is never paid back.",
				v["size_kw"], v["annual_production_kwh"], v["total_investment"])
		}
		return fmt.Sprintf("A %.1f kWp system produces about %.0f kWh per year, worth %.2f JOD annually; the %.0f JOD investment pays back in roughly %.0f months.",
			v["size_kw"], v["annual_production_kwh"], v["annual_revenue"], v["total_investment"], v["payback_months"])
	case "panels":
		return fmt.Sprintf("Covering %.0f kWh per month (about %.1f kWh per day) requires %.0f panels of %.0f W each.",
			v["total_kwh"], v["daily_kwh"], v["required_panels"], v["panel_wattage"])
	case "strings":
		return fmt.Sprintf("Connect %.0f panels in series per string and %.0f strings in parallel, giving %.0f V and %.1f A at the inverter input.",
			v["panels_per_string"], v["parallel_strings"], v["array_voltage_v"], v["array_current_a"])
	case "wire":
		return fmt.Sprintf("A %.1f mm² copper conductor keeps the voltage drop at %.1f V over the %.0f m run, dissipating %.0f W.",
			v["recommended_wire_size_mm2"], v["actual_voltage_drop_v"], v["distance_m"], v["power_loss_w"])
	case "area":
		return fmt.Sprintf("The drawn %.0f m² roof fits %.0f panels, a system of about %.1f kWp.",
			v["area_m2"], v["panel_count"], v["size_kw"])
	default:
		return "Calculation complete; see the numeric results above."
	}
}
