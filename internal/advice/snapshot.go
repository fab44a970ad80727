package advice

import (
	"math"

	"carbon_netzero/internal/models"
)

const unknownDepartment = "Unknown"

type rollupAcc struct {
	scope   int
	co2     float64
	energy  float64
	power   float64
	current float64
	samples int
}

func (a *rollupAcc) add(r models.TelemetryRecord) {
	a.co2 += nonNegative(r.CO2Emissions)
	a.energy += nonNegative(r.Energy)
	a.power += nonNegative(r.Power)
	a.current += nonNegative(r.Current)
	a.samples++
}

// BuildSnapshot reduces records (ascending by timestamp) into per-department
// and site-wide rollups. Departments keep first-seen order.
func BuildSnapshot(windowHours int, records []models.TelemetryRecord) models.Snapshot {
	var (
		order  []string
		byDept = make(map[string]*rollupAcc)
		total  rollupAcc
	)
	for _, r := range records {
		dep := r.Department
		if dep == "" {
			dep = unknownDepartment
		}
		acc, ok := byDept[dep]
		if !ok {
			acc = &rollupAcc{scope: r.Scope}
			if acc.scope < 1 || acc.scope > 3 {
				acc.scope = 1
			}
			byDept[dep] = acc
			order = append(order, dep)
		}
		acc.add(r)
		total.add(r)
	}

	snap := models.Snapshot{
		WindowHours: windowHours,
		Totals: models.SnapshotTotals{
			CO2Kg:       round(total.co2, 3),
			EnergyKWh:   round(total.energy, 3),
			AvgPowerW:   round(average(total.power, total.samples), 2),
			AvgCurrentA: round(average(total.current, total.samples), 2),
		},
		Departments: make([]models.DepartmentRollup, 0, len(order)),
	}
	for _, dep := range order {
		acc := byDept[dep]
		snap.Departments = append(snap.Departments, models.DepartmentRollup{
			Department:  dep,
			Scope:       acc.scope,
			CO2Kg:       round(acc.co2, 3),
			EnergyKWh:   round(acc.energy, 3),
			AvgPowerW:   round(average(acc.power, acc.samples), 2),
			AvgCurrentA: round(average(acc.current, acc.samples), 2),
			Samples:     acc.samples,
		})
	}
	return snap
}

func average(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// nonNegative maps negative, NaN and infinite readings to 0.
func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
