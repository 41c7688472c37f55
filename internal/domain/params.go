package domain

import "fmt"

// FeeBasis selects what base management fees accrue on.
type FeeBasis string

// CallSchedule selects how committed capital is drawn down.
type CallSchedule string

const (
	FeeBasisCommitted FeeBasis = "committed"
	FeeBasisCalled    FeeBasis = "called"

	CallScheduleUpfront CallSchedule = "upfront"
	CallScheduleStaged  CallSchedule = "staged"
)

// FundParameters is the full input of a model run. Values are immutable once
// validated; amounts are in $M, rates are fractions in [0,1], years are
// fund years counted from first close (year 0).
type FundParameters struct {
	FundSize            float64      `json:"fund_size"`
	ManagementFeeRate   float64      `json:"management_fee_rate"`
	CarriedInterestRate float64      `json:"carried_interest_rate"`
	HurdleRate          float64      `json:"hurdle_rate"`
	FundLife            int          `json:"fund_life"`
	InvestmentPeriod    int          `json:"investment_period"`
	OperatingExpenses   float64      `json:"operating_expenses"`
	RecyclingAmount     float64      `json:"recycling_amount"`
	RecyclingCutoffYear int          `json:"recycling_cutoff_year"`
	FeeBasis            FeeBasis     `json:"fee_basis"`
	CallSchedule        CallSchedule `json:"call_schedule"`

	Buckets []StrategyBucket `json:"buckets"`
}

// ValidationError reports an out-of-range or malformed parameter. It is
// always raised before any simulation work happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

// Validate checks all documented ranges. The first violation is returned as
// a *ValidationError with a field-level message.
func (p *FundParameters) Validate() error {
	if p.FundSize <= 0 {
		return &ValidationError{Field: "fund_size", Reason: "must be positive"}
	}
	if p.ManagementFeeRate < 0 || p.ManagementFeeRate > 1 {
		return &ValidationError{Field: "management_fee_rate", Reason: "must be in [0,1]"}
	}
	if p.CarriedInterestRate < 0 || p.CarriedInterestRate > 1 {
		return &ValidationError{Field: "carried_interest_rate", Reason: "must be in [0,1]"}
	}
	if p.HurdleRate < 0 || p.HurdleRate > 1 {
		return &ValidationError{Field: "hurdle_rate", Reason: "must be in [0,1]"}
	}
	if p.FundLife <= 0 {
		return &ValidationError{Field: "fund_life", Reason: "must be positive"}
	}
	if p.InvestmentPeriod <= 0 || p.InvestmentPeriod > p.FundLife {
		return &ValidationError{Field: "investment_period", Reason: "must be in [1, fund_life]"}
	}
	if p.OperatingExpenses < 0 {
		return &ValidationError{Field: "operating_expenses", Reason: "must be non-negative"}
	}
	if p.RecyclingAmount < 0 {
		return &ValidationError{Field: "recycling_amount", Reason: "must be non-negative"}
	}
	if p.RecyclingCutoffYear < 0 || p.RecyclingCutoffYear > p.FundLife {
		return &ValidationError{Field: "recycling_cutoff_year", Reason: "must be in [0, fund_life]"}
	}
	switch p.FeeBasis {
	case FeeBasisCommitted, FeeBasisCalled:
	default:
		return &ValidationError{Field: "fee_basis", Reason: `must be "committed" or "called"`}
	}
	switch p.CallSchedule {
	case CallScheduleUpfront, CallScheduleStaged:
	default:
		return &ValidationError{Field: "call_schedule", Reason: `must be "upfront" or "staged"`}
	}

	if len(p.Buckets) == 0 {
		return &ValidationError{Field: "buckets", Reason: "at least one strategy bucket is required"}
	}
	allocated := 0.0
	for i := range p.Buckets {
		if err := p.Buckets[i].Validate(); err != nil {
			return err
		}
		allocated += p.Buckets[i].Allocation
	}
	if allocated > p.FundSize {
		return &ValidationError{
			Field:  "buckets",
			Reason: fmt.Sprintf("allocations total %.2f exceeds fund_size %.2f", allocated, p.FundSize),
		}
	}

	return nil
}

// TotalManagementFees is the lifetime fee load on committed capital.
func (p *FundParameters) TotalManagementFees() float64 {
	return p.FundSize * p.ManagementFeeRate * float64(p.FundLife)
}

// NetInvestable is committed capital net of fees and operating expenses.
func (p *FundParameters) NetInvestable() float64 {
	return p.FundSize - p.TotalManagementFees() - p.OperatingExpenses
}

// TotalDeployable adds the recycling budget back on top of net investable.
func (p *FundParameters) TotalDeployable() float64 {
	return p.NetInvestable() + p.RecyclingAmount
}

// DefaultParameters returns the reference fund: $50M, 2%/20%, 10-year life,
// capital staged over a 4-year investment period, fees on committed capital.
func DefaultParameters() FundParameters {
	return FundParameters{
		FundSize:            50.0,
		ManagementFeeRate:   0.02,
		CarriedInterestRate: 0.20,
		HurdleRate:          0.08,
		FundLife:            10,
		InvestmentPeriod:    4,
		OperatingExpenses:   2.0,
		RecyclingAmount:     7.0,
		RecyclingCutoffYear: 5,
		FeeBasis:            FeeBasisCommitted,
		CallSchedule:        CallScheduleStaged,
		Buckets:             DefaultBuckets(),
	}
}
