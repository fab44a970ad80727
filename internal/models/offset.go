package models

import "time"

// CarbonOffset is a purchased or generated offset, in kg CO2e.
type CarbonOffset struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Timestamp   time.Time `json:"timestamp"`
}
