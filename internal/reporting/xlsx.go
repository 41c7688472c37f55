package reporting

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// RenderXLSX writes the report as an Excel workbook: an Overview sheet plus
// one sheet per scenario with the strategy and cash flow tables.
func RenderXLSX(r *Report, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeOverviewSheet(f, r); err != nil {
		return err
	}
	for _, s := range r.Scenarios {
		if err := writeScenarioSheet(f, s); err != nil {
			return err
		}
	}

	// The default sheet was replaced by Overview.
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeOverviewSheet(f *excelize.File, r *Report) error {
	const sheet = "Overview"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}

	rows := [][]any{
		{"Fund Model Report"},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
		{"Run", r.RunID},
		{},
		{"Metric", "Value"},
		{"Fund Size ($M)", r.Overview.FundSize},
		{"Management Fee Rate", r.Overview.ManagementFeeRate},
		{"Carried Interest Rate", r.Overview.CarriedInterestRate},
		{"Hurdle Rate", r.Overview.HurdleRate},
		{"Fund Life (years)", r.Overview.FundLife},
		{"Investment Period (years)", r.Overview.InvestmentPeriod},
		{"Operating Expenses ($M)", r.Overview.OperatingExpenses},
		{"Recycling Amount ($M)", r.Overview.RecyclingAmount},
		{"Total Management Fees ($M)", r.Overview.TotalManagementFees},
		{"Net Investable ($M)", r.Overview.NetInvestable},
		{"Total Deployable ($M)", r.Overview.TotalDeployable},
		{},
		{"Scenario", "Multiple Scale", "Gross MOIC", "Net MOIC", "IRR", "GP Carry ($M)"},
	}
	for _, row := range r.Sensitivity {
		irr := any("n/a")
		if row.IRR != nil {
			irr = *row.IRR
		}
		rows = append(rows, []any{row.ScenarioID, row.MultipleScale, row.GrossMOIC, row.NetMOIC, irr, row.GPCarry})
	}

	return writeRows(f, sheet, rows)
}

func writeScenarioSheet(f *excelize.File, s ScenarioSection) error {
	sheet := s.Label
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]any{
		{fmt.Sprintf("Scenario: %s", s.Label)},
		{"Gross MOIC", s.GrossMOIC, "Net MOIC", s.NetMOIC},
		{},
		{"Strategy", "Companies", "Invested ($M)", "Gross Return ($M)", "MOIC", "% of Portfolio"},
	}
	for _, row := range s.StrategyReturns {
		rows = append(rows, []any{string(row.Kind), row.Companies, row.Invested, row.GrossProceeds, row.MOIC, row.PortfolioShare})
	}

	rows = append(rows,
		[]any{},
		[]any{"Year", "Capital Calls", "Management Fees", "Revenue Share", "Equity Exits", "Recycled", "Total Distribution", "Net Flow", "Cumulative", "DPI"},
	)
	for _, cf := range s.CashFlows {
		rows = append(rows, []any{
			cf.Year, cf.CapitalCalls, cf.ManagementFees, cf.RevenueShare, cf.EquityExits,
			cf.RecycledInvested, cf.TotalDistribution, cf.NetFlow, cf.CumulativeDistribution, cf.DPI,
		})
	}

	rows = append(rows,
		[]any{},
		[]any{"Waterfall Tier", "Amount ($M)"},
		[]any{"Return of Capital", s.Waterfall.ReturnOfCapital},
		[]any{"Preferred Return", s.Waterfall.PreferredReturn},
		[]any{"GP Catch-Up", s.Waterfall.GPCatchUp},
		[]any{"GP Carry", s.Waterfall.GPCarry},
		[]any{"LP Profit", s.Waterfall.LPProfit},
		[]any{"LP Total", s.Waterfall.LPTotal},
		[]any{"GP Total", s.Waterfall.GPTotal},
	)

	return writeRows(f, sheet, rows)
}

// writeRows writes consecutive rows starting at A1.
func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
