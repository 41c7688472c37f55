package domain

// CompanyOutcome is one simulated portfolio company result. Generated once
// per model run per company; never mutated afterwards.
type CompanyOutcome struct {
	OutcomeID    string       `json:"outcome_id"` // deterministic, see idhash
	BucketKind   StrategyKind `json:"bucket_kind"`
	CompanyIndex int          `json:"company_index"` // 0-based within the bucket

	Invested     float64 `json:"invested"`
	ExitMultiple float64 `json:"exit_multiple"` // scenario-scaled equity multiple
	ExitYear     int     `json:"exit_year"`     // in [1, fund_life]; first year any proceeds arrive
	// EquityExitYear is when the equity component pays out. Equals ExitYear
	// for equity and fixed-return strategies; revenue-share deals collect the
	// share early and realize the equity kicker late, so there it is later.
	EquityExitYear int    `json:"equity_exit_year"`
	TierLabel      string `json:"tier_label"` // which power-law tier was drawn

	RevenueShareProceeds float64 `json:"revenue_share_proceeds"`
	EquityProceeds       float64 `json:"equity_proceeds"`
	TotalProceeds        float64 `json:"total_proceeds"`
}

// OutcomeStats summarizes the distribution of exit multiples across a run's
// companies.
type OutcomeStats struct {
	Companies int `json:"companies"`

	MultipleMean   float64 `json:"multiple_mean"`
	MultipleMedian float64 `json:"multiple_median"`
	MultipleP10    float64 `json:"multiple_p10"`
	MultipleP25    float64 `json:"multiple_p25"`
	MultipleP75    float64 `json:"multiple_p75"`
	MultipleP90    float64 `json:"multiple_p90"`
	MultipleMin    float64 `json:"multiple_min"`
	MultipleMax    float64 `json:"multiple_max"`
	MultipleStddev float64 `json:"multiple_stddev"`

	LossRatio float64 `json:"loss_ratio"` // share of companies returning < 1x
	HomeRuns  int     `json:"home_runs"`  // companies returning >= 10x
}
