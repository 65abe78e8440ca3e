package model

import "time"

// ProductionReading is one simulated output sample for a monitored site,
// published by the simulator and persisted by the persistence service.
type ProductionReading struct {
	SiteID        string    `json:"site_id"`
	Location      Location  `json:"location"`
	EstimatedKw   float64   `json:"estimated_kw"`
	CloudCoverPct float64   `json:"cloud_cover_pct"`
	UVIndex       float64   `json:"uv_index"`
	Timestamp     time.Time `json:"timestamp"`
}
