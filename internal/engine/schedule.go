package engine

import "venture-fund-lab/internal/domain"

// buildSchedule folds company outcomes into the year-indexed projection.
// The schedule always has fund_life+1 entries, year 0 through fund_life.
//
// Recycled-capital buckets are funded by diverting early gains back into new
// investments rather than by additional capital calls, so total calls never
// exceed committed capital. If the gains realized before the recycling
// cutoff cannot cover the recycled allocation, the recycled bucket's
// outcomes are scaled down proportionally.
func buildSchedule(params domain.FundParameters, outcomes []domain.CompanyOutcome) domain.CashFlowSchedule {
	years := params.FundLife + 1
	schedule := make(domain.CashFlowSchedule, years)
	for y := 0; y < years; y++ {
		schedule[y].Year = y
	}

	bookCalls(params, schedule)
	bookFees(params, schedule)

	// Gross proceeds from called-capital buckets land first; recycling
	// diverts from them before totals are computed.
	for i := range outcomes {
		o := &outcomes[i]
		if o.BucketKind == domain.StrategyRecycled {
			continue
		}
		bookProceeds(schedule, o, params.FundLife, 0)
	}

	recycleAndBook(params, schedule, outcomes)

	cumulative := 0.0
	for y := 0; y < years; y++ {
		row := &schedule[y]
		row.TotalDistribution = row.RevenueShare + row.EquityExits
		row.NetFlow = row.TotalDistribution - row.CapitalCalls
		cumulative += row.TotalDistribution
		row.CumulativeDistribution = cumulative
		if params.FundSize > 0 {
			row.DPI = cumulative / params.FundSize
		}
	}
	return schedule
}

// bookCalls draws committed capital either all in year 0 or evenly over the
// investment period starting at year 0.
func bookCalls(params domain.FundParameters, schedule domain.CashFlowSchedule) {
	if params.CallSchedule == domain.CallScheduleUpfront {
		schedule[0].CapitalCalls = params.FundSize
		return
	}
	perYear := params.FundSize / float64(params.InvestmentPeriod)
	for y := 0; y < params.InvestmentPeriod && y < len(schedule); y++ {
		schedule[y].CapitalCalls = perYear
	}
}

// bookFees accrues management fees annually in years 1..fund_life, plus
// operating expenses spread evenly over the same span. Fees are paid out of
// called capital; the column is informational and does not reduce LP
// distributions directly.
func bookFees(params domain.FundParameters, schedule domain.CashFlowSchedule) {
	opexPerYear := params.OperatingExpenses / float64(params.FundLife)

	called := 0.0
	for y := 0; y < len(schedule); y++ {
		called += schedule[y].CapitalCalls
		if y == 0 {
			continue
		}
		base := params.FundSize
		if params.FeeBasis == domain.FeeBasisCalled {
			base = called
		}
		schedule[y].ManagementFees = base*params.ManagementFeeRate + opexPerYear
	}
}

// bookProceeds places one outcome's components into the schedule. Revenue
// share lands at the exit year, equity at the equity exit year; both are
// clamped into [minYear, fund_life] so nothing falls off the projection.
func bookProceeds(schedule domain.CashFlowSchedule, o *domain.CompanyOutcome, fundLife, minYear int) {
	schedule[clampYear(o.ExitYear, minYear, fundLife)].RevenueShare += o.RevenueShareProceeds
	schedule[clampYear(o.EquityExitYear, minYear, fundLife)].EquityExits += o.EquityProceeds
}

// recycleAndBook diverts early gains into the recycled bucket and books the
// (possibly scaled) recycled outcomes.
func recycleAndBook(params domain.FundParameters, schedule domain.CashFlowSchedule, outcomes []domain.CompanyOutcome) {
	needed := 0.0
	for _, o := range outcomes {
		if o.BucketKind == domain.StrategyRecycled {
			needed += o.Invested
		}
	}
	if needed == 0 {
		return
	}
	if needed > params.RecyclingAmount {
		needed = params.RecyclingAmount
	}

	// Divert gains realized in years 1..cutoff, oldest first.
	diverted := 0.0
	for y := 1; y <= params.RecyclingCutoffYear && y < len(schedule); y++ {
		row := &schedule[y]
		available := row.RevenueShare + row.EquityExits
		if available == 0 {
			continue
		}
		take := needed - diverted
		if take > available {
			take = available
		}
		// Drain revenue share before equity.
		fromRevenue := take
		if fromRevenue > row.RevenueShare {
			fromRevenue = row.RevenueShare
		}
		row.RevenueShare -= fromRevenue
		row.EquityExits -= take - fromRevenue
		row.RecycledInvested += take
		diverted += take
		if diverted >= needed {
			break
		}
	}

	totalInvested := 0.0
	for _, o := range outcomes {
		if o.BucketKind == domain.StrategyRecycled {
			totalInvested += o.Invested
		}
	}
	scale := diverted / totalInvested
	if scale > 1 {
		scale = 1
	}

	for i := range outcomes {
		o := &outcomes[i]
		if o.BucketKind != domain.StrategyRecycled {
			continue
		}
		o.Invested *= scale
		o.RevenueShareProceeds *= scale
		o.EquityProceeds *= scale
		o.TotalProceeds *= scale
		// Recycled positions are opened by the cutoff year, so their
		// proceeds cannot land earlier than that.
		bookProceeds(schedule, o, params.FundLife, params.RecyclingCutoffYear)
	}
}

func clampYear(year, minYear, fundLife int) int {
	if year < minYear {
		year = minYear
	}
	if year > fundLife {
		return fundLife
	}
	if year < 0 {
		return 0
	}
	return year
}
