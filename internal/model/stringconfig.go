package model

// StringConfigInput describes the panel electrical ratings and the target
// operating window of the array.
type StringConfigInput struct {
	PanelVoltageV         float64 `json:"panel_voltage_v"`
	PanelCurrentA         float64 `json:"panel_current_a"`
	DesiredSystemVoltageV float64 `json:"desired_system_voltage_v"`
	DesiredSystemCurrentA float64 `json:"desired_system_current_a"`
}

// StringConfig is a series/parallel layout. ArrayVoltageV and ArrayCurrentA
// are the resulting operating point, always within the equipment limits the
// solver was given.
type StringConfig struct {
	PanelsPerString int     `json:"panels_per_string"`
	ParallelStrings int     `json:"parallel_strings"`
	ArrayVoltageV   float64 `json:"array_voltage_v"`
	ArrayCurrentA   float64 `json:"array_current_a"`
}

// EquipmentLimits caps a configuration at the inverter's rated input.
type EquipmentLimits struct {
	MaxSystemVoltageV float64 `json:"max_system_voltage_v"`
	MaxInputCurrentA  float64 `json:"max_input_current_a"`
}

// DefaultEquipmentLimits matches a common residential string inverter:
// 1000 V DC input, 150 A combined string current.
func DefaultEquipmentLimits() EquipmentLimits {
	return EquipmentLimits{MaxSystemVoltageV: 1000, MaxInputCurrentA: 150}
}
