package advice

import (
	"sort"
	"strings"

	"carbon_netzero/internal/models"
)

// fromModel turns parsed model output into a payload: departments sorted by
// summary.co2_kg descending and capped to topN, entries without strategies
// dropped, every slice non-nil. ok is false when nothing usable remains.
func fromModel(out ModelOutput, windowHours, topN int, usedFallback bool) (models.AdvicePayload, bool) {
	depts := make([]models.DepartmentStrategies, 0, len(out.StrategiesByDepartment))
	for _, d := range out.StrategiesByDepartment {
		d.Strategies = normalizeStrategies(d.Strategies)
		if len(d.Strategies) == 0 {
			continue
		}
		d.Summary.CO2Kg = nonNegative(d.Summary.CO2Kg)
		d.Summary.EnergyKWh = nonNegative(d.Summary.EnergyKWh)
		depts = append(depts, d)
	}
	sort.SliceStable(depts, func(i, j int) bool {
		return depts[i].Summary.CO2Kg > depts[j].Summary.CO2Kg
	})
	if len(depts) > topN {
		depts = depts[:topN]
	}

	global := normalizeStrategies(out.GlobalRecommendations)
	if len(depts) == 0 && len(global) == 0 {
		return models.AdvicePayload{}, false
	}
	return models.AdvicePayload{
		WindowHours:            windowHours,
		StrategiesByDepartment: depts,
		GlobalRecommendations:  global,
		UsedFallbackModel:      usedFallback,
	}, true
}

func normalizeStrategies(in []models.StrategyItem) []models.StrategyItem {
	out := make([]models.StrategyItem, 0, len(in))
	for _, s := range in {
		s.Title = strings.TrimSpace(s.Title)
		if s.Title == "" {
			continue
		}
		s.ExpectedImpactKgCO2PerDay = nonNegative(s.ExpectedImpactKgCO2PerDay)
		s.Difficulty = normalizeDifficulty(s.Difficulty)
		if s.Actions == nil {
			s.Actions = []string{}
		}
		out = append(out, s)
	}
	return out
}

func normalizeDifficulty(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "low", "easy":
		return models.DifficultyLow
	case "high", "hard":
		return models.DifficultyHigh
	default:
		return models.DifficultyMed
	}
}

// emptyPayload is returned when the window holds no telemetry.
func emptyPayload(windowHours int) models.AdvicePayload {
	return models.AdvicePayload{
		WindowHours:            windowHours,
		StrategiesByDepartment: []models.DepartmentStrategies{},
		GlobalRecommendations:  []models.StrategyItem{},
		Note:                   NoDataNote,
	}
}
