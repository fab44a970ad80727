package models

import "time"

// EmissionAlert is raised when a single reading crosses the configured threshold.
type EmissionAlert struct {
	ID         string    `json:"id"`
	Department string    `json:"department"`
	Scope      int       `json:"scope"`
	Value      float64   `json:"value"` // kg CO2e
	Threshold  float64   `json:"threshold"`
	Timestamp  time.Time `json:"timestamp"`
}
