package finance

import (
	"errors"
	"math"
	"testing"
)

func TestNPVZeroRate(t *testing.T) {
	flows := []float64{-100, 30, 40, 50}
	got := NPV(0, flows)
	want := 20.0
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("NPV(0) = %v, want %v", got, want)
	}
}

func TestNPVDiscounting(t *testing.T) {
	// -100 today, +110 in one year at 10% discounts to exactly zero.
	flows := []float64{-100, 110}
	got := NPV(0.10, flows)
	if math.Abs(got) > 1e-9 {
		t.Fatalf("NPV(0.10) = %v, want 0", got)
	}
}

func TestIRRSimpleDoubling(t *testing.T) {
	// -1 then +2 one year later is a 100% annual return.
	rate, err := IRR([]float64{-1, 2})
	if err != nil {
		t.Fatalf("IRR error: %v", err)
	}
	if math.Abs(rate-1.0) > 1e-6 {
		t.Fatalf("IRR = %v, want 1.0", rate)
	}
}

func TestIRRMultiYear(t *testing.T) {
	// -1000 then four years of 350 has an IRR near 14.96%.
	rate, err := IRR([]float64{-1000, 350, 350, 350, 350})
	if err != nil {
		t.Fatalf("IRR error: %v", err)
	}
	if math.Abs(NPV(rate, []float64{-1000, 350, 350, 350, 350})) > 1e-6 {
		t.Fatalf("NPV at solved rate = %v, want ~0", NPV(rate, []float64{-1000, 350, 350, 350, 350}))
	}
	if rate < 0.14 || rate > 0.16 {
		t.Fatalf("IRR = %v, want near 0.15", rate)
	}
}

func TestIRRNegative(t *testing.T) {
	// Losing half the capital over one year is a -50% return.
	rate, err := IRR([]float64{-100, 50})
	if err != nil {
		t.Fatalf("IRR error: %v", err)
	}
	if math.Abs(rate+0.5) > 1e-6 {
		t.Fatalf("IRR = %v, want -0.5", rate)
	}
}

func TestIRRNoSignChange(t *testing.T) {
	cases := [][]float64{
		{-100, -50, -25},
		{100, 50, 25},
		{0, 0, 0},
	}
	for _, flows := range cases {
		if _, err := IRR(flows); !errors.Is(err, ErrNoSignChange) {
			t.Fatalf("IRR(%v) error = %v, want ErrNoSignChange", flows, err)
		}
	}
}

func TestIRRLateDistribution(t *testing.T) {
	// Fund-shaped series: staged calls, quiet middle, late distributions.
	flows := []float64{-12.5, -12.5, -12.5, -12.5, 0, 5, 10, 20, 30, 40, 20}
	rate, err := IRR(flows)
	if err != nil {
		t.Fatalf("IRR error: %v", err)
	}
	if math.Abs(NPV(rate, flows)) > 1e-6 {
		t.Fatalf("NPV at solved rate = %v, want ~0", NPV(rate, flows))
	}
	if rate <= 0 {
		t.Fatalf("IRR = %v, want positive for a 2.5x fund", rate)
	}
}
