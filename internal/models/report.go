package models

// ReportSummary is the net-zero progress view over a filtered period.
type ReportSummary struct {
	TotalCO2     float64   `json:"totalCO2"`
	TotalEnergy  float64   `json:"totalEnergy"`
	TotalOffsets float64   `json:"totalOffsets"`
	NetCO2       float64   `json:"netCO2"`
	Progress     float64   `json:"progress"` // percent of emissions offset, 0..100
	Hotspots     []Hotspot `json:"hotspots"`
}

// EmissionForecast is a linear extrapolation of per-reading CO2. Prediction
// is nil when there is not enough history.
type EmissionForecast struct {
	Prediction   *float64 `json:"prediction"`
	Slope        *float64 `json:"slope,omitempty"`
	Intercept    *float64 `json:"intercept,omitempty"`
	MinutesAhead int      `json:"minutesAhead,omitempty"`
	Samples      int      `json:"samples,omitempty"`
	Message      string   `json:"message,omitempty"`
}
