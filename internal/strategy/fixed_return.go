package strategy

import (
	"math/rand"

	"venture-fund-lab/internal/domain"
	"venture-fund-lab/internal/idhash"
)

// FixedReturnGenerator models buckets planned to a target MOIC rather than a
// stochastic distribution: INCUBATION and RECYCLED_CAPITAL. The scenario
// scale still applies, so sensitivity runs move these buckets too.
type FixedReturnGenerator struct {
	kind       domain.StrategyKind
	targetMOIC float64
}

func NewFixedReturnGenerator(kind domain.StrategyKind, targetMOIC float64) *FixedReturnGenerator {
	return &FixedReturnGenerator{kind: kind, targetMOIC: targetMOIC}
}

func (g *FixedReturnGenerator) Kind() domain.StrategyKind { return g.kind }

func (g *FixedReturnGenerator) Generate(rng *rand.Rand, companyIndex int, invested float64, scenario domain.ScenarioConfig, fundLife int) domain.CompanyOutcome {
	multiple := g.targetMOIC * scenario.MultipleScale
	exitYear := sampleExitYear(rng, fundLife)
	proceeds := invested * multiple

	return domain.CompanyOutcome{
		OutcomeID:      idhash.ComputeOutcomeID(scenario.ScenarioID, g.kind, companyIndex),
		BucketKind:     g.kind,
		CompanyIndex:   companyIndex,
		Invested:       invested,
		ExitMultiple:   multiple,
		ExitYear:       exitYear,
		EquityExitYear: exitYear,
		TierLabel:      "target_moic",
		EquityProceeds: proceeds,
		TotalProceeds:  proceeds,
	}
}
