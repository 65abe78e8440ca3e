package model

// WireSizingInput describes one circuit to be sized.
type WireSizingInput struct {
	CurrentA              float64 `json:"current_a"`
	VoltageV              float64 `json:"voltage_v"`
	DistanceM             float64 `json:"distance_m"` // one-way run
	MaxVoltageDropPercent float64 `json:"max_voltage_drop_percent"`
}

// WireSizingResult carries the smallest standard conductor that keeps the
// round-trip voltage drop within the allowed percentage.
type WireSizingResult struct {
	RecommendedWireSizeMM2 float64 `json:"recommended_wire_size_mm2"`
	ActualVoltageDropV     float64 `json:"actual_voltage_drop_v"`
	PowerLossW             float64 `json:"power_loss_w"`
}
