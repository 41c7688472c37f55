// Package metrics computes summary statistics over simulated company
// outcomes. All functions are pure; percentiles use linear interpolation
// between closest ranks.
package metrics

import (
	"math"
	"sort"

	"venture-fund-lab/internal/domain"
)

const homeRunMultiple = 10.0

// ComputeOutcomeStats summarizes the realized multiple distribution of a
// run's companies. The realized multiple of a company is its total proceeds
// over invested capital. Returns the zero value for an empty slice.
func ComputeOutcomeStats(outcomes []domain.CompanyOutcome) domain.OutcomeStats {
	if len(outcomes) == 0 {
		return domain.OutcomeStats{}
	}

	multiples := make([]float64, 0, len(outcomes))
	losses := 0
	homeRuns := 0
	for _, o := range outcomes {
		m := 0.0
		if o.Invested > 0 {
			m = o.TotalProceeds / o.Invested
		}
		multiples = append(multiples, m)
		if m < 1.0 {
			losses++
		}
		if m >= homeRunMultiple {
			homeRuns++
		}
	}
	sort.Float64s(multiples)

	return domain.OutcomeStats{
		Companies:      len(outcomes),
		MultipleMean:   Mean(multiples),
		MultipleMedian: Percentile(multiples, 50),
		MultipleP10:    Percentile(multiples, 10),
		MultipleP25:    Percentile(multiples, 25),
		MultipleP75:    Percentile(multiples, 75),
		MultipleP90:    Percentile(multiples, 90),
		MultipleMin:    multiples[0],
		MultipleMax:    multiples[len(multiples)-1],
		MultipleStddev: Stddev(multiples),
		LossRatio:      float64(losses) / float64(len(outcomes)),
		HomeRuns:       homeRuns,
	}
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Stddev returns the sample standard deviation (n-1 denominator), or 0 for
// fewer than two values.
func Stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

// Percentile returns the p-th percentile of a sorted slice using linear
// interpolation. p is in [0, 100].
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
