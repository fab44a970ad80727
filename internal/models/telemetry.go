package models

import "time"

// TelemetryRecord is a single electrical reading for a department.
type TelemetryRecord struct {
	ID           string    `json:"id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Department   string    `json:"department"`
	Scope        int       `json:"scope"`         // 1 | 2 | 3
	Current      float64   `json:"current"`       // A
	Voltage      float64   `json:"voltage"`       // V
	Power        float64   `json:"power"`         // W
	Energy       float64   `json:"energy"`        // kWh
	CO2Emissions float64   `json:"co2_emissions"` // kg CO2e
}

// DepartmentRollup aggregates one department's readings inside a window.
type DepartmentRollup struct {
	Department  string  `json:"department"`
	Scope       int     `json:"scope"`
	CO2Kg       float64 `json:"co2_kg"`
	EnergyKWh   float64 `json:"energy_kWh"`
	AvgPowerW   float64 `json:"avg_power_W"`
	AvgCurrentA float64 `json:"avg_current_A"`
	Samples     int     `json:"samples"`
}

// SnapshotTotals are the site-wide figures of a Snapshot.
type SnapshotTotals struct {
	CO2Kg       float64 `json:"co2_kg"`
	EnergyKWh   float64 `json:"energy_kWh"`
	AvgPowerW   float64 `json:"avg_power_W"`
	AvgCurrentA float64 `json:"avg_current_A"`
}

// Snapshot is the aggregated telemetry view fed to the model and the heuristic.
type Snapshot struct {
	WindowHours int                `json:"windowHours"`
	Totals      SnapshotTotals     `json:"totals"`
	Departments []DepartmentRollup `json:"departments"`
}

// Hotspot is a department ranked by cumulative emissions.
type Hotspot struct {
	Department string  `json:"department"`
	TotalCO2   float64 `json:"totalCO2"`
}
