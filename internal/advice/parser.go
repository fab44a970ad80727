package advice

import (
	"encoding/json"
	"strings"

	"carbon_netzero/internal/models"
)

// ModelOutput is the structure extracted from model text. Fields the model
// omitted or mistyped are left empty.
type ModelOutput struct {
	StrategiesByDepartment []models.DepartmentStrategies
	GlobalRecommendations  []models.StrategyItem
}

// ParseModelJSON extracts the outermost {...} span of text and decodes it.
// It returns ok=false only when that span is not a JSON object; a text with
// no braces decodes as the empty object.
func ParseModelJSON(text string) (ModelOutput, bool) {
	raw := extractObject(text)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		return ModelOutput{}, false
	}

	var out ModelOutput
	for _, item := range decodeArray(fields["strategies_by_department"]) {
		var ds models.DepartmentStrategies
		if err := json.Unmarshal(item, &ds); err == nil {
			out.StrategiesByDepartment = append(out.StrategiesByDepartment, ds)
		}
	}
	for _, item := range decodeArray(fields["global_recommendations"]) {
		var s models.StrategyItem
		if err := json.Unmarshal(item, &s); err == nil {
			out.GlobalRecommendations = append(out.GlobalRecommendations, s)
		}
	}
	return out, true
}

func extractObject(text string) string {
	trimmed := strings.TrimSpace(text)
	start := strings.IndexByte(trimmed, '{')
	end := strings.LastIndexByte(trimmed, '}')
	if start < 0 || end < 0 || end < start {
		return "{}"
	}
	return trimmed[start : end+1]
}

// decodeArray splits a JSON array into its elements; anything else yields nil.
func decodeArray(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}
