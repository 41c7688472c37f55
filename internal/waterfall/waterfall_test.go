package waterfall

import (
	"math"
	"testing"
)

var standardTerms = Terms{CarriedInterestRate: 0.20, HurdleRate: 0.08}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDistributeUnderWaterNoCarry(t *testing.T) {
	// Fund returns less than called capital: everything is return of
	// capital and the GP gets nothing.
	calls := []float64{50, 0, 0, 0}
	dists := []float64{0, 0, 10, 20}

	res := Distribute(calls, dists, standardTerms)
	s := res.Summary

	if !almostEqual(s.ReturnOfCapital, 30) {
		t.Fatalf("ReturnOfCapital = %v, want 30", s.ReturnOfCapital)
	}
	if s.GPCarry != 0 || s.GPCatchUp != 0 {
		t.Fatalf("GP took %v carry / %v catch-up while under water", s.GPCarry, s.GPCatchUp)
	}
	if !almostEqual(s.LPTotal, 30) {
		t.Fatalf("LPTotal = %v, want 30", s.LPTotal)
	}
	if !almostEqual(s.NetMOIC, 0.6) {
		t.Fatalf("NetMOIC = %v, want 0.6", s.NetMOIC)
	}
}

func TestDistributeExactCapitalReturn(t *testing.T) {
	res := Distribute([]float64{100}, []float64{0, 0, 100}, standardTerms)
	s := res.Summary

	if !almostEqual(s.ReturnOfCapital, 100) {
		t.Fatalf("ReturnOfCapital = %v, want 100", s.ReturnOfCapital)
	}
	if s.PreferredReturn != 0 {
		t.Fatalf("PreferredReturn = %v, want 0 (nothing left above capital)", s.PreferredReturn)
	}
	if s.GPTotal != 0 {
		t.Fatalf("GPTotal = %v, want 0", s.GPTotal)
	}
}

func TestDistributeProfitableFullWaterfall(t *testing.T) {
	// 100 called up front, 250 distributed in year 5. Preferred accrues
	// 8 per year on outstanding capital for 5 years: 40.
	calls := []float64{100}
	dists := []float64{0, 0, 0, 0, 0, 250}

	res := Distribute(calls, dists, standardTerms)
	s := res.Summary

	if !almostEqual(s.ReturnOfCapital, 100) {
		t.Fatalf("ReturnOfCapital = %v, want 100", s.ReturnOfCapital)
	}
	if !almostEqual(s.PreferredReturn, 40) {
		t.Fatalf("PreferredReturn = %v, want 40", s.PreferredReturn)
	}
	// Catch-up target: 0.2/0.8 * 40 = 10.
	if !almostEqual(s.GPCatchUp, 10) {
		t.Fatalf("GPCatchUp = %v, want 10", s.GPCatchUp)
	}
	// Remaining 100 splits 80/20.
	if !almostEqual(s.GPCarry, 20) {
		t.Fatalf("GPCarry = %v, want 20", s.GPCarry)
	}
	if !almostEqual(s.LPProfit, 80) {
		t.Fatalf("LPProfit = %v, want 80", s.LPProfit)
	}

	// Conservation: every distributed dollar lands with the LP or the GP.
	if !almostEqual(s.LPTotal+s.GPTotal, s.TotalDistributed) {
		t.Fatalf("LPTotal %v + GPTotal %v != TotalDistributed %v", s.LPTotal, s.GPTotal, s.TotalDistributed)
	}
	// At full catch-up the GP holds carry% of all profit above capital.
	profit := s.TotalDistributed - s.ReturnOfCapital
	if !almostEqual(s.GPTotal, 0.20*profit) {
		t.Fatalf("GPTotal = %v, want 20%% of profit %v", s.GPTotal, profit)
	}
}

func TestDistributeZeroHurdle(t *testing.T) {
	res := Distribute([]float64{100}, []float64{0, 200}, Terms{CarriedInterestRate: 0.20})
	s := res.Summary

	if s.PreferredReturn != 0 || s.GPCatchUp != 0 {
		t.Fatalf("preferred/catch-up = %v/%v, want 0/0 with zero hurdle", s.PreferredReturn, s.GPCatchUp)
	}
	if !almostEqual(s.GPCarry, 20) {
		t.Fatalf("GPCarry = %v, want 20", s.GPCarry)
	}
	if !almostEqual(s.LPTotal, 180) {
		t.Fatalf("LPTotal = %v, want 180", s.LPTotal)
	}
}

func TestDistributeLPSeriesMatchesTotal(t *testing.T) {
	calls := []float64{25, 25, 25, 25}
	dists := []float64{0, 0, 10, 30, 60, 80}

	res := Distribute(calls, dists, standardTerms)

	sum := 0.0
	for _, d := range res.LPDistributions {
		sum += d
	}
	if !almostEqual(sum, res.Summary.LPTotal) {
		t.Fatalf("LP series sums to %v, summary says %v", sum, res.Summary.LPTotal)
	}
	if len(res.LPDistributions) != len(dists) {
		t.Fatalf("LP series length = %d, want %d", len(res.LPDistributions), len(dists))
	}
}

func TestDistributeStagedCallsEarlyDistributionNoCarry(t *testing.T) {
	// An early exit pays out before the second call lands, so the year-0
	// distribution exceeds capital called to date. It must still count
	// against the full commitment: the fund ends down 20 overall, and a
	// fund that never returns its capital pays no carry.
	calls := []float64{25, 25}
	dists := []float64{30, 0}

	res := Distribute(calls, dists, standardTerms)
	s := res.Summary

	if s.GPCarry != 0 || s.GPCatchUp != 0 {
		t.Fatalf("GP took %v carry / %v catch-up on a fund that returned 30 of 50", s.GPCarry, s.GPCatchUp)
	}
	if !almostEqual(s.ReturnOfCapital, 30) {
		t.Fatalf("ReturnOfCapital = %v, want 30", s.ReturnOfCapital)
	}
	if !almostEqual(s.LPTotal, 30) {
		t.Fatalf("LPTotal = %v, want all 30 to LPs", s.LPTotal)
	}
	if s.PreferredReturn != 0 {
		t.Fatalf("PreferredReturn = %v, want 0 below the capital tier", s.PreferredReturn)
	}
}

func TestDistributeEarlyDistributionThenProfit(t *testing.T) {
	// Capital returned ahead of later calls offsets them: no preferred
	// accrues on the negative stretch, and once the commitment is covered
	// the remainder flows through the profit tiers.
	calls := []float64{25, 25}
	dists := []float64{30, 40}

	res := Distribute(calls, dists, standardTerms)
	s := res.Summary

	if !almostEqual(s.ReturnOfCapital, 50) {
		t.Fatalf("ReturnOfCapital = %v, want the full 50 commitment", s.ReturnOfCapital)
	}
	if s.PreferredReturn != 0 {
		t.Fatalf("PreferredReturn = %v, want 0 (LPs were never out of pocket at a year boundary)", s.PreferredReturn)
	}
	// 20 above capital splits 80/20 with nothing owed to the hurdle.
	if !almostEqual(s.GPCarry, 4) {
		t.Fatalf("GPCarry = %v, want 4", s.GPCarry)
	}
	if !almostEqual(s.LPProfit, 16) {
		t.Fatalf("LPProfit = %v, want 16", s.LPProfit)
	}
}

func TestDistributeEarlyDollarsAreCapitalFirst(t *testing.T) {
	// The first distribution is consumed by return of capital before any
	// tier above it opens.
	res := Distribute([]float64{50}, []float64{0, 30, 100}, standardTerms)

	if !almostEqual(res.LPDistributions[1], 30) {
		t.Fatalf("year 1 LP distribution = %v, want all 30 as capital", res.LPDistributions[1])
	}
	if res.Summary.ReturnOfCapital != 50 {
		t.Fatalf("ReturnOfCapital = %v, want 50", res.Summary.ReturnOfCapital)
	}
}
