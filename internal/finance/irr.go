// Package finance implements discounted cash flow primitives over annual,
// year-indexed flow series (index 0 is fund inception).
package finance

import (
	"errors"
	"math"
)

// ErrNoSignChange is returned by IRR when the flow series is all
// non-negative or all non-positive, so no discount rate can zero the NPV.
var ErrNoSignChange = errors.New("finance: cash flow series has no sign change")

const (
	newtonGuess   = 0.1
	maxIterations = 100
	tolerance     = 1e-9

	bisectLow  = -0.9999
	bisectHigh = 10.0
)

// NPV discounts the flow series at the given annual rate. flows[i] occurs
// at the end of year i; flows[0] is undiscounted.
func NPV(rate float64, flows []float64) float64 {
	total := 0.0
	for i, f := range flows {
		total += f / math.Pow(1.0+rate, float64(i))
	}
	return total
}

// IRR solves for the annual rate at which the NPV of flows is zero. It tries
// Newton's method first and falls back to bisection when Newton diverges or
// leaves the search interval. Returns ErrNoSignChange when the series cannot
// have a root.
func IRR(flows []float64) (float64, error) {
	if !hasSignChange(flows) {
		return 0, ErrNoSignChange
	}

	if rate, ok := newton(flows); ok {
		return rate, nil
	}
	return bisect(flows)
}

func hasSignChange(flows []float64) bool {
	hasPositive, hasNegative := false, false
	for _, f := range flows {
		if f > 0 {
			hasPositive = true
		} else if f < 0 {
			hasNegative = true
		}
	}
	return hasPositive && hasNegative
}

func newton(flows []float64) (float64, bool) {
	rate := newtonGuess
	for i := 0; i < maxIterations; i++ {
		value := NPV(rate, flows)
		if math.Abs(value) < tolerance {
			return rate, true
		}

		derivative := npvDerivative(rate, flows)
		if derivative == 0 || math.IsNaN(derivative) || math.IsInf(derivative, 0) {
			return 0, false
		}

		next := rate - value/derivative
		if math.IsNaN(next) || next <= bisectLow || next > bisectHigh {
			return 0, false
		}
		rate = next
	}
	return 0, false
}

func npvDerivative(rate float64, flows []float64) float64 {
	total := 0.0
	for i, f := range flows {
		if i == 0 {
			continue
		}
		total -= float64(i) * f / math.Pow(1.0+rate, float64(i+1))
	}
	return total
}

func bisect(flows []float64) (float64, error) {
	low, high := bisectLow, bisectHigh
	fLow, fHigh := NPV(low, flows), NPV(high, flows)
	if fLow*fHigh > 0 {
		// A sign change in the flows guarantees a root for conventional
		// call-then-distribute series, but not on an arbitrary interval.
		return 0, ErrNoSignChange
	}

	for i := 0; i < maxIterations; i++ {
		mid := (low + high) / 2
		fMid := NPV(mid, flows)
		if math.Abs(fMid) < tolerance || (high-low)/2 < tolerance {
			return mid, nil
		}
		if fLow*fMid < 0 {
			high = mid
		} else {
			low, fLow = mid, fMid
		}
	}
	return (low + high) / 2, nil
}
