package reporting

import (
	"time"

	"venture-fund-lab/internal/domain"
)

// Report is the rendered-model report structure. One report covers all
// scenarios of a single run.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	RunID       string

	Overview FundOverview

	// One section per scenario, downside to upside.
	Scenarios []ScenarioSection

	// Cross-scenario sensitivity table.
	Sensitivity []SensitivityRow
}

// FundOverview contains the fund economics the report was run with.
type FundOverview struct {
	FundSize            float64
	ManagementFeeRate   float64
	CarriedInterestRate float64
	HurdleRate          float64
	FundLife            int
	InvestmentPeriod    int
	OperatingExpenses   float64
	RecyclingAmount     float64

	TotalManagementFees float64
	NetInvestable       float64
	TotalDeployable     float64
}

// ScenarioSection contains one scenario's full results.
type ScenarioSection struct {
	ScenarioID string
	Label      string

	GrossMOIC float64
	NetMOIC   float64
	IRR       *float64

	StrategyReturns []StrategyReturnRow
	CashFlows       []CashFlowRow
	Waterfall       domain.WaterfallSummary
	Stats           domain.OutcomeStats
}

// StrategyReturnRow aggregates one strategy bucket's performance.
type StrategyReturnRow struct {
	Kind           domain.StrategyKind
	Companies      int
	Invested       float64
	GrossProceeds  float64
	MOIC           float64
	PortfolioShare float64 // invested / total invested
}

// CashFlowRow is one fiscal year of the projection.
type CashFlowRow struct {
	Year                   int
	CapitalCalls           float64
	ManagementFees         float64
	RevenueShare           float64
	EquityExits            float64
	RecycledInvested       float64
	TotalDistribution      float64
	NetFlow                float64
	CumulativeDistribution float64
	DPI                    float64
}

// SensitivityRow compares headline metrics across scenarios.
type SensitivityRow struct {
	ScenarioID    string
	MultipleScale float64
	GrossMOIC     float64
	NetMOIC       float64
	IRR           *float64
	GPCarry       float64
}
