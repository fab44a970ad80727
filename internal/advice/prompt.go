package advice

import (
	"encoding/json"
	"strings"

	"carbon_netzero/internal/models"
)

var promptRules = []string{
	"Output strict JSON only (no commentary).",
	`Top-level shape: {"strategies_by_department": [{"department", "summary": {"co2_kg", "energy_kWh"}, "strategies": [...]}], "global_recommendations": [...]}.`,
	"For each department, list 2–4 strategies.",
	`Each strategy: {title, rationale, expected_impact_kg_co2_per_day, difficulty: "low|med|high", actions: [..]}`,
	`Also include "global_recommendations" for site-wide actions (2–5 items).`,
	"Be conservative; if unsure, use low impacts (0–5 kg/day).",
	"Prefer strategies inferred from current (A), power (W), energy (kWh) patterns.",
	"If abnormal spikes or idle load appear, call that out.",
	"DO NOT suggest scope 2/3; only scope 1, on-site actions.",
}

// BuildPrompt renders the instruction block followed by the snapshot as JSON.
func BuildPrompt(snap models.Snapshot) string {
	var b strings.Builder
	b.WriteString("You are an industrial energy & carbon reduction expert.\n")
	b.WriteString("Given the snapshot of recent telemetry, propose practical, high-ROI reduction strategies.\n")
	b.WriteString("Rules:\n")
	for _, r := range promptRules {
		b.WriteString("- ")
		b.WriteString(r)
		b.WriteByte('\n')
	}
	b.WriteString("SNAPSHOT: ")
	// A Snapshot only holds strings and numbers, so Marshal cannot fail.
	js, _ := json.Marshal(snap)
	b.Write(js)
	return b.String()
}
