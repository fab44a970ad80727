package models

// Strategy difficulty levels.
const (
	DifficultyLow  = "low"
	DifficultyMed  = "med"
	DifficultyHigh = "high"
)

// StrategyItem is one recommended reduction action.
type StrategyItem struct {
	Title                     string   `json:"title"`
	Rationale                 string   `json:"rationale"`
	ExpectedImpactKgCO2PerDay float64  `json:"expected_impact_kg_co2_per_day"`
	Difficulty                string   `json:"difficulty"`
	Actions                   []string `json:"actions"`
}

// DepartmentSummary is the figure the model and the heuristic rank departments by.
type DepartmentSummary struct {
	CO2Kg     float64 `json:"co2_kg"`
	EnergyKWh float64 `json:"energy_kWh"`
}

// DepartmentStrategies groups strategies for one department.
type DepartmentStrategies struct {
	Department string            `json:"department"`
	Summary    DepartmentSummary `json:"summary"`
	Strategies []StrategyItem    `json:"strategies"`
}

// AdvicePayload is the unit cached and returned by the advice pipeline.
type AdvicePayload struct {
	WindowHours            int                    `json:"windowHours"`
	StrategiesByDepartment []DepartmentStrategies `json:"strategies_by_department"`
	GlobalRecommendations  []StrategyItem         `json:"global_recommendations"`
	UsedFallbackModel      bool                   `json:"usedFallbackModel"`
	IsHeuristic            bool                   `json:"fallback"`
	Note                   string                 `json:"note,omitempty"`
	Cached                 bool                   `json:"cached,omitempty"`
}
