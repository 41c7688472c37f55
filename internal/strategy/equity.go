package strategy

import (
	"math/rand"

	"venture-fund-lab/internal/domain"
	"venture-fund-lab/internal/idhash"
)

// EquityGenerator draws exit multiples from a discrete power-law tier table.
// Used for SEED and SERIES_A buckets.
type EquityGenerator struct {
	kind  domain.StrategyKind
	tiers []domain.OutcomeTier
}

// NewEquityGenerator builds a tier-table generator. The factory has already
// validated that tiers is non-empty and its probabilities sum to 1.
func NewEquityGenerator(kind domain.StrategyKind, tiers []domain.OutcomeTier) *EquityGenerator {
	return &EquityGenerator{kind: kind, tiers: tiers}
}

func (g *EquityGenerator) Kind() domain.StrategyKind { return g.kind }

func (g *EquityGenerator) Generate(rng *rand.Rand, companyIndex int, invested float64, scenario domain.ScenarioConfig, fundLife int) domain.CompanyOutcome {
	tier := g.drawTier(rng)
	multiple := tier.Multiple * scenario.MultipleScale
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
		TierLabel:      tier.Label,
		EquityProceeds: proceeds,
		TotalProceeds:  proceeds,
	}
}

// drawTier walks the cumulative distribution. Rounding can leave a sliver of
// probability mass unassigned, so the last tier absorbs it.
func (g *EquityGenerator) drawTier(rng *rand.Rand) domain.OutcomeTier {
	draw := rng.Float64()
	cum := 0.0
	for _, tier := range g.tiers {
		cum += tier.Probability
		if draw < cum {
			return tier
		}
	}
	return g.tiers[len(g.tiers)-1]
}
