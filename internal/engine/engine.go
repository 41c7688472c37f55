// Package engine runs the fund model end to end: it validates parameters,
// draws company outcomes per strategy bucket, folds them into a year-indexed
// cash flow schedule, and settles the LP/GP waterfall.
package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"venture-fund-lab/internal/domain"
	"venture-fund-lab/internal/finance"
	"venture-fund-lab/internal/idhash"
	"venture-fund-lab/internal/metrics"
	"venture-fund-lab/internal/strategy"
	"venture-fund-lab/internal/waterfall"
)

// Run executes one scenario. The RNG seed is derived from the parameters
// alone, so identical inputs always reproduce the same result and every
// scenario replays the same draws.
func Run(params domain.FundParameters, scenario domain.ScenarioConfig) (*domain.FundResult, error) {
	// 1. Validate before any simulation work.
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// 2. Deterministic seed. Scenario-independent, so all three scenarios
	// replay the same draws under different multiple scales.
	seed, err := idhash.ComputeRunSeed(params)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))

	// 3. Draw company outcomes bucket by bucket, in declaration order.
	outcomes, err := generateOutcomes(rng, params, scenario)
	if err != nil {
		return nil, err
	}

	// 4. Fold outcomes into the cash flow schedule.
	schedule := buildSchedule(params, outcomes)

	// 5. Settle the waterfall over the schedule's call and distribution series.
	calls := make([]float64, len(schedule))
	dists := make([]float64, len(schedule))
	for i, y := range schedule {
		calls[i] = y.CapitalCalls
		dists[i] = y.TotalDistribution
	}
	wf := waterfall.Distribute(calls, dists, waterfall.Terms{
		CarriedInterestRate: params.CarriedInterestRate,
		HurdleRate:          params.HurdleRate,
	})

	// 6. Headline metrics. The IRR is solved over the LP's net flow series;
	// a fund that never distributes has no root and reports a nil IRR.
	lpFlows := make([]float64, len(schedule))
	for i := range schedule {
		lpFlows[i] = wf.LPDistributions[i] - calls[i]
	}
	var irr *float64
	if rate, irrErr := finance.IRR(lpFlows); irrErr == nil {
		irr = &rate
	} else if !errors.Is(irrErr, finance.ErrNoSignChange) {
		return nil, fmt.Errorf("engine: irr: %w", irrErr)
	}

	return &domain.FundResult{
		ScenarioID: scenario.ScenarioID,
		Seed:       seed,
		Schedule:   schedule,
		Outcomes:   outcomes,
		GrossMOIC:  grossMOIC(outcomes),
		NetMOIC:    wf.Summary.NetMOIC,
		IRR:        irr,
		LPFlows:    lpFlows,
		Waterfall:  wf.Summary,
		Stats:      metrics.ComputeOutcomeStats(outcomes),
	}, nil
}

// RunAllScenarios runs downside, base, and upside with the same parameters.
func RunAllScenarios(params domain.FundParameters) ([]*domain.FundResult, error) {
	results := make([]*domain.FundResult, 0, len(domain.AllScenarios))
	for _, scenario := range domain.AllScenarios {
		result, err := Run(params, scenario)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func generateOutcomes(rng *rand.Rand, params domain.FundParameters, scenario domain.ScenarioConfig) ([]domain.CompanyOutcome, error) {
	var outcomes []domain.CompanyOutcome
	for _, bucket := range params.Buckets {
		if bucket.Count == 0 {
			continue
		}
		gen, err := strategy.FromBucket(bucket)
		if err != nil {
			return nil, err
		}
		invested := bucket.Allocation / float64(bucket.Count)
		for i := 0; i < bucket.Count; i++ {
			outcomes = append(outcomes, gen.Generate(rng, i, invested, scenario, params.FundLife))
		}
	}
	return outcomes, nil
}

func grossMOIC(outcomes []domain.CompanyOutcome) float64 {
	invested, proceeds := 0.0, 0.0
	for _, o := range outcomes {
		invested += o.Invested
		proceeds += o.TotalProceeds
	}
	if invested == 0 {
		return 0
	}
	return proceeds / invested
}
