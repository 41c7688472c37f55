// Package waterfall distributes fund proceeds between LPs and the GP under
// an American-style waterfall: return of capital, preferred return on
// outstanding capital, 100% GP catch-up, then the carry split.
package waterfall

import (
	"venture-fund-lab/internal/domain"
)

// Terms are the economic terms the split depends on.
type Terms struct {
	CarriedInterestRate float64
	HurdleRate          float64 // 0 disables the preferred return tier
}

// Result carries the split plus the per-year LP distribution series the IRR
// is computed over. LPDistributions is indexed by year, same length as the
// input series.
type Result struct {
	Summary         domain.WaterfallSummary
	LPDistributions []float64
}

// Distribute runs the waterfall over year-indexed series of capital calls
// and gross distributions (both non-negative, index 0 is inception).
// Distributions are applied in year order, but the return-of-capital tier
// holds the full commitment: no dollar reaches the preferred, catch-up, or
// carry tiers until cumulative distributions cover every call in the
// series, including calls scheduled after the distribution lands.
func Distribute(calls, distributions []float64, terms Terms) Result {
	years := len(distributions)
	lpSeries := make([]float64, years)

	totalCommitted := 0.0
	for _, c := range calls {
		totalCommitted += c
	}

	var (
		// outstanding is called capital minus capital returned. It dips
		// negative when an early distribution runs ahead of later calls;
		// preferred return accrues only on the positive part.
		outstanding      float64
		prefAccrued      float64 // unpaid preferred return
		prefPaid         float64
		roc              float64
		gpCatchUp        float64
		gpCarry          float64
		lpProfit         float64
		totalCalled      float64
		totalDistributed float64
	)

	carry := terms.CarriedInterestRate
	// At full catch-up the GP holds carry% of all profit above capital, which
	// makes the catch-up target carry/(1-carry) times the preferred paid.
	catchUpRatio := 0.0
	if carry > 0 && carry < 1 {
		catchUpRatio = carry / (1 - carry)
	}

	for year := 0; year < years; year++ {
		// Preferred return accrues on capital outstanding at the start of
		// the year, simple interest.
		prefAccrued += max(0, outstanding) * terms.HurdleRate

		if year < len(calls) {
			outstanding += calls[year]
			totalCalled += calls[year]
		}

		remaining := distributions[year]
		totalDistributed += remaining

		// Tier 1: return of capital, against the full commitment.
		if remaining > 0 && roc < totalCommitted {
			pay := min(remaining, totalCommitted-roc)
			outstanding -= pay
			roc += pay
			lpSeries[year] += pay
			remaining -= pay
		}

		// Tier 2: preferred return.
		if remaining > 0 && prefAccrued > 0 {
			pay := min(remaining, prefAccrued)
			prefAccrued -= pay
			prefPaid += pay
			lpSeries[year] += pay
			remaining -= pay
		}

		// Tier 3: GP catch-up, 100% to the GP until the target.
		if remaining > 0 && catchUpRatio > 0 {
			target := catchUpRatio*prefPaid - gpCatchUp
			if target > 0 {
				pay := min(remaining, target)
				gpCatchUp += pay
				remaining -= pay
			}
		}

		// Tier 4: carry split.
		if remaining > 0 {
			gpShare := remaining * carry
			gpCarry += gpShare
			lpProfit += remaining - gpShare
			lpSeries[year] += remaining - gpShare
		}
	}

	lpTotal := roc + prefPaid + lpProfit
	gpTotal := gpCatchUp + gpCarry

	netMOIC := 0.0
	if totalCalled > 0 {
		netMOIC = lpTotal / totalCalled
	}

	return Result{
		Summary: domain.WaterfallSummary{
			TotalCalled:      totalCalled,
			TotalDistributed: totalDistributed,
			ReturnOfCapital:  roc,
			PreferredReturn:  prefPaid,
			GPCatchUp:        gpCatchUp,
			GPCarry:          gpCarry,
			LPProfit:         lpProfit,
			LPTotal:          lpTotal,
			GPTotal:          gpTotal,
			NetMOIC:          netMOIC,
		},
		LPDistributions: lpSeries,
	}
}
