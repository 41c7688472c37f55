package reporting

import (
	"fmt"
	"strings"
)

// RenderCashFlowCSV renders one scenario's cash flow projection as CSV.
func RenderCashFlowCSV(s ScenarioSection) string {
	var sb strings.Builder

	// Header
	sb.WriteString("year,capital_calls,management_fees,revenue_share,equity_exits,recycled_invested,")
	sb.WriteString("total_distribution,net_flow,cumulative_distribution,dpi\n")

	// Rows
	for _, cf := range s.CashFlows {
		sb.WriteString(fmt.Sprintf("%d,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f\n",
			cf.Year,
			cf.CapitalCalls,
			cf.ManagementFees,
			cf.RevenueShare,
			cf.EquityExits,
			cf.RecycledInvested,
			cf.TotalDistribution,
			cf.NetFlow,
			cf.CumulativeDistribution,
			cf.DPI,
		))
	}

	return sb.String()
}

// RenderStrategyCSV renders one scenario's per-strategy returns as CSV.
func RenderStrategyCSV(s ScenarioSection) string {
	var sb strings.Builder

	sb.WriteString("strategy,companies,invested,gross_proceeds,moic,portfolio_share\n")
	for _, row := range s.StrategyReturns {
		sb.WriteString(fmt.Sprintf("%s,%d,%.6f,%.6f,%.6f,%.6f\n",
			row.Kind,
			row.Companies,
			row.Invested,
			row.GrossProceeds,
			row.MOIC,
			row.PortfolioShare,
		))
	}

	return sb.String()
}
