package advice

import (
	"sort"

	"carbon_netzero/internal/models"
)

// HeuristicNote marks payloads produced without the model.
const HeuristicNote = "Heuristic fallback used (model unavailable)."

// Heuristic builds a deterministic payload from the snapshot alone: the top
// topN departments by CO2, each with two templated strategies scaled to its
// emissions, plus two fixed site-wide recommendations.
func Heuristic(snap models.Snapshot, topN int) models.AdvicePayload {
	depts := make([]models.DepartmentRollup, len(snap.Departments))
	copy(depts, snap.Departments)
	sort.SliceStable(depts, func(i, j int) bool {
		return nonNegative(depts[i].CO2Kg) > nonNegative(depts[j].CO2Kg)
	})
	if topN < 0 {
		topN = 0
	}
	if len(depts) > topN {
		depts = depts[:topN]
	}

	byDept := make([]models.DepartmentStrategies, 0, len(depts))
	for _, d := range depts {
		co2 := nonNegative(d.CO2Kg)
		byDept = append(byDept, models.DepartmentStrategies{
			Department: d.Department,
			Summary:    models.DepartmentSummary{CO2Kg: co2, EnergyKWh: nonNegative(d.EnergyKWh)},
			Strategies: []models.StrategyItem{
				{
					Title:                     "Target idle load reduction",
					Rationale:                 "Department shows significant cumulative CO₂; review off-shift consumption patterns.",
					ExpectedImpactKgCO2PerDay: round(co2*0.02, 2),
					Difficulty:                models.DifficultyMed,
					Actions:                   []string{"Analyze 24h load curve", "Identify machines left energized", "Implement shutdown checklist"},
				},
				{
					Title:                     "Preventive maintenance energy tune-up",
					Rationale:                 "Routine calibration can trim avoidable energy waste in motors & compressors.",
					ExpectedImpactKgCO2PerDay: round(co2*0.01, 2),
					Difficulty:                models.DifficultyLow,
					Actions:                   []string{"Inspect motor bearings", "Verify sensor calibration", "Check compressed air leaks"},
				},
			},
		})
	}

	return models.AdvicePayload{
		WindowHours:            snap.WindowHours,
		StrategiesByDepartment: byDept,
		GlobalRecommendations:  globalRecommendations(),
		IsHeuristic:            true,
		Note:                   HeuristicNote,
	}
}

func globalRecommendations() []models.StrategyItem {
	return []models.StrategyItem{
		{
			Title:                     "Establish energy performance baseline",
			Rationale:                 "A stable baseline enables early anomaly detection and prioritization.",
			ExpectedImpactKgCO2PerDay: 3,
			Difficulty:                models.DifficultyLow,
			Actions:                   []string{"Define baseline window", "Tag abnormal peaks", "Automate baseline drift alerts"},
		},
		{
			Title:                     "Implement real-time anomaly alerts",
			Rationale:                 "Faster reaction to spikes reduces wasted kWh and associated CO₂.",
			ExpectedImpactKgCO2PerDay: 5,
			Difficulty:                models.DifficultyMed,
			Actions:                   []string{"Set threshold rules", "Route alerts to operations chat", "Weekly review of false positives"},
		},
	}
}
