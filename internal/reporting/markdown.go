package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders the report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Fund Model Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	if r.RunID != "" {
		sb.WriteString(fmt.Sprintf("Run: %s\n\n", r.RunID))
	}

	// Fund Overview
	sb.WriteString("## Fund Overview\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Fund Size | $%.1fM |\n", r.Overview.FundSize))
	sb.WriteString(fmt.Sprintf("| Management Fee | %.1f%% |\n", r.Overview.ManagementFeeRate*100))
	sb.WriteString(fmt.Sprintf("| Carried Interest | %.1f%% |\n", r.Overview.CarriedInterestRate*100))
	sb.WriteString(fmt.Sprintf("| Hurdle Rate | %.1f%% |\n", r.Overview.HurdleRate*100))
	sb.WriteString(fmt.Sprintf("| Fund Life | %d years |\n", r.Overview.FundLife))
	sb.WriteString(fmt.Sprintf("| Investment Period | %d years |\n", r.Overview.InvestmentPeriod))
	sb.WriteString(fmt.Sprintf("| Total Management Fees | $%.1fM |\n", r.Overview.TotalManagementFees))
	sb.WriteString(fmt.Sprintf("| Net Investable Capital | $%.1fM |\n", r.Overview.NetInvestable))
	sb.WriteString(fmt.Sprintf("| Total Deployable (with recycling) | $%.1fM |\n", r.Overview.TotalDeployable))
	sb.WriteString("\n")

	// Per-scenario sections
	for _, s := range r.Scenarios {
		sb.WriteString(fmt.Sprintf("## Scenario: %s\n\n", s.Label))
		sb.WriteString(fmt.Sprintf("Gross MOIC: %.2fx | Net MOIC: %.2fx | IRR: %s\n\n",
			s.GrossMOIC, s.NetMOIC, formatIRR(s.IRR)))

		sb.WriteString("### Strategy Returns\n\n")
		sb.WriteString("| Strategy | Companies | Invested | Gross Return | MOIC | % of Portfolio |\n")
		sb.WriteString("|----------|-----------|----------|--------------|------|----------------|\n")
		for _, row := range s.StrategyReturns {
			sb.WriteString(fmt.Sprintf("| %s | %d | $%.1fM | $%.1fM | %.2fx | %.1f%% |\n",
				row.Kind, row.Companies, row.Invested, row.GrossProceeds, row.MOIC, row.PortfolioShare*100))
		}
		sb.WriteString("\n")

		sb.WriteString("### Cash Flow Projection\n\n")
		sb.WriteString("| Year | Calls | Fees | Revenue Share | Equity Exits | Recycled | Distribution | Net Flow | DPI |\n")
		sb.WriteString("|------|-------|------|---------------|--------------|----------|--------------|----------|-----|\n")
		for _, cf := range s.CashFlows {
			sb.WriteString(fmt.Sprintf("| %d | %.1f | %.1f | %.1f | %.1f | %.1f | %.1f | %.1f | %.2f |\n",
				cf.Year, cf.CapitalCalls, cf.ManagementFees, cf.RevenueShare, cf.EquityExits,
				cf.RecycledInvested, cf.TotalDistribution, cf.NetFlow, cf.DPI))
		}
		sb.WriteString("\n")

		sb.WriteString("### LP / GP Waterfall\n\n")
		sb.WriteString("| Tier | Amount |\n")
		sb.WriteString("|------|--------|\n")
		sb.WriteString(fmt.Sprintf("| Return of Capital | $%.1fM |\n", s.Waterfall.ReturnOfCapital))
		sb.WriteString(fmt.Sprintf("| Preferred Return | $%.1fM |\n", s.Waterfall.PreferredReturn))
		sb.WriteString(fmt.Sprintf("| GP Catch-Up | $%.1fM |\n", s.Waterfall.GPCatchUp))
		sb.WriteString(fmt.Sprintf("| GP Carry | $%.1fM |\n", s.Waterfall.GPCarry))
		sb.WriteString(fmt.Sprintf("| LP Profit | $%.1fM |\n", s.Waterfall.LPProfit))
		sb.WriteString(fmt.Sprintf("| **LP Total** | $%.1fM |\n", s.Waterfall.LPTotal))
		sb.WriteString(fmt.Sprintf("| **GP Total** | $%.1fM |\n", s.Waterfall.GPTotal))
		sb.WriteString("\n")

		sb.WriteString("### Outcome Distribution\n\n")
		sb.WriteString(fmt.Sprintf("Companies: %d | Mean: %.2fx | Median: %.2fx | P10: %.2fx | P90: %.2fx | Loss Ratio: %.0f%% | Home Runs: %d\n\n",
			s.Stats.Companies, s.Stats.MultipleMean, s.Stats.MultipleMedian,
			s.Stats.MultipleP10, s.Stats.MultipleP90, s.Stats.LossRatio*100, s.Stats.HomeRuns))
	}

	// Sensitivity
	sb.WriteString("## Scenario Sensitivity\n\n")
	sb.WriteString("| Scenario | Multiple Scale | Gross MOIC | Net MOIC | IRR | GP Carry |\n")
	sb.WriteString("|----------|----------------|------------|----------|-----|----------|\n")
	for _, row := range r.Sensitivity {
		sb.WriteString(fmt.Sprintf("| %s | %.1fx | %.2fx | %.2fx | %s | $%.1fM |\n",
			row.ScenarioID, row.MultipleScale, row.GrossMOIC, row.NetMOIC, formatIRR(row.IRR), row.GPCarry))
	}
	sb.WriteString("\n")

	return sb.String()
}

// formatIRR renders an IRR pointer, using n/a when the solve had no root.
func formatIRR(irr *float64) string {
	if irr == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *irr*100)
}
