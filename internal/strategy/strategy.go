// Package strategy implements per-bucket outcome generation. Each strategy
// kind maps to exactly one OutcomeGenerator; FromBucket validates the bucket's
// distribution parameters and returns the matching generator.
package strategy

import (
	"math/rand"

	"venture-fund-lab/internal/domain"
)

// OutcomeGenerator draws one simulated company outcome. Implementations are
// pure apart from the rng: the same rng state and arguments always produce
// the same outcome.
type OutcomeGenerator interface {
	// Generate draws the outcome of one company given its invested capital.
	// companyIndex is the 0-based index within the bucket and feeds the
	// deterministic outcome id.
	Generate(rng *rand.Rand, companyIndex int, invested float64, scenario domain.ScenarioConfig, fundLife int) domain.CompanyOutcome

	// Kind reports which strategy this generator implements.
	Kind() domain.StrategyKind
}
