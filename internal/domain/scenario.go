package domain

// ScenarioConfig scales the outcome draws deterministically. The same
// parameters and scenario always produce the same result, which is what
// makes the sensitivity grid repeatable.
type ScenarioConfig struct {
	ScenarioID    string  `json:"scenario_id"`    // "downside" | "base" | "upside"
	MultipleScale float64 `json:"multiple_scale"` // applied to every drawn exit multiple
	Label         string  `json:"label"`
}

// Scenario ID constants
const (
	ScenarioDownside = "downside"
	ScenarioBase     = "base"
	ScenarioUpside   = "upside"
)

// Predefined scenario configurations. The ±30% scaling keeps scenario
// ordering monotone: downside MOIC ≤ base MOIC ≤ upside MOIC for any
// fixed parameter set.
var (
	ScenarioConfigDownside = ScenarioConfig{
		ScenarioID:    ScenarioDownside,
		MultipleScale: 0.7,
		Label:         "Downside (-30%)",
	}

	ScenarioConfigBase = ScenarioConfig{
		ScenarioID:    ScenarioBase,
		MultipleScale: 1.0,
		Label:         "Base Case",
	}

	ScenarioConfigUpside = ScenarioConfig{
		ScenarioID:    ScenarioUpside,
		MultipleScale: 1.3,
		Label:         "Upside (+30%)",
	}
)

// AllScenarios lists every scenario in downside, base, upside order.
var AllScenarios = []ScenarioConfig{
	ScenarioConfigDownside,
	ScenarioConfigBase,
	ScenarioConfigUpside,
}

// ScenarioByID resolves a scenario id. The second return is false for
// unknown ids.
func ScenarioByID(id string) (ScenarioConfig, bool) {
	for _, s := range AllScenarios {
		if s.ScenarioID == id {
			return s, true
		}
	}
	return ScenarioConfig{}, false
}
