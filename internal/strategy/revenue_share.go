package strategy

import (
	"math/rand"

	"venture-fund-lab/internal/domain"
	"venture-fund-lab/internal/idhash"
)

// revenueShareMaxYear bounds when revenue-share collection completes. The
// share is collected against early revenue, so it pays out in the first half
// of fund life.
const revenueShareMaxYear = 5

// RevenueShareGenerator models the SHARED_SAFE structure: the company repays
// a revenue share until a cap expressed as a multiple of invested capital,
// and a fraction of the check converts to equity that exits late in fund
// life at a fixed multiple.
type RevenueShareGenerator struct {
	cap            float64
	equityKicker   float64
	equityMultiple float64
}

func NewRevenueShareGenerator(cap, equityKicker, equityMultiple float64) *RevenueShareGenerator {
	return &RevenueShareGenerator{cap: cap, equityKicker: equityKicker, equityMultiple: equityMultiple}
}

func (g *RevenueShareGenerator) Kind() domain.StrategyKind { return domain.StrategySharedSAFE }

func (g *RevenueShareGenerator) Generate(rng *rand.Rand, companyIndex int, invested float64, scenario domain.ScenarioConfig, fundLife int) domain.CompanyOutcome {
	revenueProceeds := invested * g.cap * scenario.MultipleScale
	equityProceeds := invested * g.equityKicker * g.equityMultiple * scenario.MultipleScale
	total := revenueProceeds + equityProceeds

	exitYear := sampleEarlyExitYear(rng, fundLife, revenueShareMaxYear)
	equityYear := sampleLateEquityYear(rng, fundLife, exitYear)

	return domain.CompanyOutcome{
		OutcomeID:            idhash.ComputeOutcomeID(scenario.ScenarioID, domain.StrategySharedSAFE, companyIndex),
		BucketKind:           domain.StrategySharedSAFE,
		CompanyIndex:         companyIndex,
		Invested:             invested,
		ExitMultiple:         total / invested,
		ExitYear:             exitYear,
		EquityExitYear:       equityYear,
		TierLabel:            "revenue_share",
		RevenueShareProceeds: revenueProceeds,
		EquityProceeds:       equityProceeds,
		TotalProceeds:        total,
	}
}

// sampleLateEquityYear draws the equity kicker's exit year from the back
// portion of fund life, never earlier than the revenue-share completion.
func sampleLateEquityYear(rng *rand.Rand, fundLife, floor int) int {
	lower := (fundLife * 7) / 10
	if lower < floor {
		lower = floor
	}
	if lower >= fundLife {
		return fundLife
	}
	return lower + rng.Intn(fundLife-lower+1)
}
