package reporting

import (
	"time"

	"venture-fund-lab/internal/domain"
)

// Generator assembles reports from completed run results.
type Generator struct {
	now func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate builds a complete report from the run's parameters and its
// per-scenario results.
func (g *Generator) Generate(runID string, params domain.FundParameters, results []*domain.FundResult) *Report {
	report := &Report{
		GeneratedAt: g.now(),
		RunID:       runID,
		Overview: FundOverview{
			FundSize:            params.FundSize,
			ManagementFeeRate:   params.ManagementFeeRate,
			CarriedInterestRate: params.CarriedInterestRate,
			HurdleRate:          params.HurdleRate,
			FundLife:            params.FundLife,
			InvestmentPeriod:    params.InvestmentPeriod,
			OperatingExpenses:   params.OperatingExpenses,
			RecyclingAmount:     params.RecyclingAmount,
			TotalManagementFees: params.TotalManagementFees(),
			NetInvestable:       params.NetInvestable(),
			TotalDeployable:     params.TotalDeployable(),
		},
	}

	for _, result := range results {
		report.Scenarios = append(report.Scenarios, buildScenarioSection(result))

		scale := 0.0
		if sc, ok := domain.ScenarioByID(result.ScenarioID); ok {
			scale = sc.MultipleScale
		}
		report.Sensitivity = append(report.Sensitivity, SensitivityRow{
			ScenarioID:    result.ScenarioID,
			MultipleScale: scale,
			GrossMOIC:     result.GrossMOIC,
			NetMOIC:       result.NetMOIC,
			IRR:           result.IRR,
			GPCarry:       result.Waterfall.GPCarry,
		})
	}

	return report
}

func buildScenarioSection(result *domain.FundResult) ScenarioSection {
	label := result.ScenarioID
	if sc, ok := domain.ScenarioByID(result.ScenarioID); ok {
		label = sc.Label
	}

	section := ScenarioSection{
		ScenarioID:      result.ScenarioID,
		Label:           label,
		GrossMOIC:       result.GrossMOIC,
		NetMOIC:         result.NetMOIC,
		IRR:             result.IRR,
		StrategyReturns: buildStrategyReturns(result.Outcomes),
		Waterfall:       result.Waterfall,
		Stats:           result.Stats,
	}

	for _, y := range result.Schedule {
		section.CashFlows = append(section.CashFlows, CashFlowRow{
			Year:                   y.Year,
			CapitalCalls:           y.CapitalCalls,
			ManagementFees:         y.ManagementFees,
			RevenueShare:           y.RevenueShare,
			EquityExits:            y.EquityExits,
			RecycledInvested:       y.RecycledInvested,
			TotalDistribution:      y.TotalDistribution,
			NetFlow:                y.NetFlow,
			CumulativeDistribution: y.CumulativeDistribution,
			DPI:                    y.DPI,
		})
	}

	return section
}

// buildStrategyReturns aggregates outcomes per bucket, in reporting order.
func buildStrategyReturns(outcomes []domain.CompanyOutcome) []StrategyReturnRow {
	byKind := make(map[domain.StrategyKind]*StrategyReturnRow)
	totalInvested := 0.0
	for _, o := range outcomes {
		row, ok := byKind[o.BucketKind]
		if !ok {
			row = &StrategyReturnRow{Kind: o.BucketKind}
			byKind[o.BucketKind] = row
		}
		row.Companies++
		row.Invested += o.Invested
		row.GrossProceeds += o.TotalProceeds
		totalInvested += o.Invested
	}

	var rows []StrategyReturnRow
	for _, kind := range domain.AllStrategyKinds {
		row, ok := byKind[kind]
		if !ok {
			continue
		}
		if row.Invested > 0 {
			row.MOIC = row.GrossProceeds / row.Invested
		}
		if totalInvested > 0 {
			row.PortfolioShare = row.Invested / totalInvested
		}
		rows = append(rows, *row)
	}
	return rows
}
