package domain

// YearFlow is one fiscal year of the fund. All amounts are non-negative;
// direction is carried by the column, not the sign.
type YearFlow struct {
	Year int `json:"year"`

	CapitalCalls     float64 `json:"capital_calls"`
	ManagementFees   float64 `json:"management_fees"`
	RevenueShare     float64 `json:"revenue_share"`
	EquityExits      float64 `json:"equity_exits"`
	RecycledInvested float64 `json:"recycled_invested"`

	TotalDistribution      float64 `json:"total_distribution"`
	NetFlow                float64 `json:"net_flow"` // distributions - calls
	CumulativeDistribution float64 `json:"cumulative_distribution"`
	DPI                    float64 `json:"dpi"` // cumulative distributions / committed
}

// CashFlowSchedule is the complete year-indexed projection. Invariant:
// exactly fund_life+1 entries, Year fields 0..fund_life with no gaps, so
// chart and export collaborators can iterate without re-deriving fiscal
// year logic.
type CashFlowSchedule []YearFlow

// TotalCalled sums capital calls across all years.
func (s CashFlowSchedule) TotalCalled() float64 {
	total := 0.0
	for _, y := range s {
		total += y.CapitalCalls
	}
	return total
}

// TotalDistributed sums distributions across all years.
func (s CashFlowSchedule) TotalDistributed() float64 {
	total := 0.0
	for _, y := range s {
		total += y.TotalDistribution
	}
	return total
}

// NetFlows returns the signed year-indexed series used for the IRR solve:
// calls negative, distributions positive.
func (s CashFlowSchedule) NetFlows() []float64 {
	flows := make([]float64, len(s))
	for i, y := range s {
		flows[i] = y.TotalDistribution - y.CapitalCalls
	}
	return flows
}
