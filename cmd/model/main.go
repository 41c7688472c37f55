// Package main runs the fund model once and writes the full report bundle to
// disk: REPORT.md, per-scenario cash flow and strategy CSVs, PNG charts, and
// the fund_model.xlsx workbook.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"venture-fund-lab/internal/charts"
	"venture-fund-lab/internal/domain"
	"venture-fund-lab/internal/engine"
	"venture-fund-lab/internal/reporting"
)

func main() {
	outputDir := flag.String("output-dir", "output", "Output directory for generated files")
	paramsPath := flag.String("params", "", "JSON file with parameter overrides (defaults used when empty)")
	flag.Parse()

	params, err := loadParameters(*paramsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading parameters: %v\n", err)
		os.Exit(1)
	}

	results, err := engine.RunAllScenarios(params)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(os.Stderr, "Invalid parameters: %v\n", verr)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error running model: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	report := reporting.NewGenerator().Generate("local", params, results)

	if err := writeReportBundle(*outputDir, report, results); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing reports: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Fund model report generated:")
	fmt.Printf("  - %s/REPORT.md\n", *outputDir)
	fmt.Printf("  - %s/fund_model.xlsx\n", *outputDir)
	for _, res := range results {
		fmt.Printf("  - %s/cash_flows_%s.csv\n", *outputDir, res.ScenarioID)
	}
}

// loadParameters reads overrides from a JSON file merged over the defaults.
func loadParameters(path string) (domain.FundParameters, error) {
	params := domain.DefaultParameters()
	if path == "" {
		return params, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return params, err
	}
	if err := json.Unmarshal(data, &params); err != nil {
		return params, fmt.Errorf("parse %s: %w", path, err)
	}
	return params, nil
}

// writeReportBundle writes the markdown report, the workbook, and the
// per-scenario CSVs and charts.
func writeReportBundle(dir string, report *reporting.Report, results []*domain.FundResult) error {
	if err := os.WriteFile(filepath.Join(dir, "REPORT.md"), []byte(reporting.RenderMarkdown(report)), 0644); err != nil {
		return err
	}

	xlsxFile, err := os.Create(filepath.Join(dir, "fund_model.xlsx"))
	if err != nil {
		return err
	}
	if err := reporting.RenderXLSX(report, xlsxFile); err != nil {
		xlsxFile.Close()
		return err
	}
	if err := xlsxFile.Close(); err != nil {
		return err
	}

	for _, section := range report.Scenarios {
		id := section.ScenarioID
		if err := os.WriteFile(filepath.Join(dir, "cash_flows_"+id+".csv"), []byte(reporting.RenderCashFlowCSV(section)), 0644); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, "strategies_"+id+".csv"), []byte(reporting.RenderStrategyCSV(section)), 0644); err != nil {
			return err
		}
	}

	for _, res := range results {
		if err := writeCharts(dir, res); err != nil {
			return err
		}
	}
	return nil
}

func writeCharts(dir string, res *domain.FundResult) error {
	renders := []struct {
		name   string
		render func(*domain.FundResult) ([]byte, error)
	}{
		{"distributions", charts.DistributionTimeline},
		{"dpi", charts.DPICurve},
		{"multiples", charts.StrategyMultiples},
	}
	for _, r := range renders {
		png, err := r.render(res)
		if err != nil {
			return fmt.Errorf("render %s chart for %s: %w", r.name, res.ScenarioID, err)
		}
		name := strings.Join([]string{"chart", r.name, res.ScenarioID}, "_") + ".png"
		if err := os.WriteFile(filepath.Join(dir, name), png, 0644); err != nil {
			return err
		}
	}
	return nil
}
