// Package charts renders run results as PNG images: the distribution
// timeline, the DPI curve, and per-strategy multiples. Images are returned
// as raw bytes so callers can write files or embed them in API responses.
package charts

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"venture-fund-lab/internal/domain"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 4.5 * vg.Inch
)

var (
	colorRevenue = color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	colorEquity  = color.RGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}
	colorCalls   = color.RGBA{R: 0xf4, G: 0x43, B: 0x36, A: 0xff}
	colorLine    = color.RGBA{R: 0x67, G: 0x3a, B: 0xb7, A: 0xff}
)

// DistributionTimeline draws yearly capital calls and distributions as
// grouped bars: calls below the axis would be misleading, so calls, revenue
// share, and equity exits are drawn side by side per year.
func DistributionTimeline(result *domain.FundResult) ([]byte, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Cash Flow Timeline (%s)", result.ScenarioID)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "$M"

	years := len(result.Schedule)
	calls := make(plotter.Values, years)
	revenue := make(plotter.Values, years)
	equity := make(plotter.Values, years)
	labels := make([]string, years)
	for i, y := range result.Schedule {
		calls[i] = y.CapitalCalls
		revenue[i] = y.RevenueShare
		equity[i] = y.EquityExits
		labels[i] = fmt.Sprintf("%d", y.Year)
	}

	barWidth := vg.Points(8)

	callBars, err := plotter.NewBarChart(calls, barWidth)
	if err != nil {
		return nil, fmt.Errorf("calls bars: %w", err)
	}
	callBars.Color = colorCalls
	callBars.Offset = -barWidth

	revenueBars, err := plotter.NewBarChart(revenue, barWidth)
	if err != nil {
		return nil, fmt.Errorf("revenue bars: %w", err)
	}
	revenueBars.Color = colorRevenue

	equityBars, err := plotter.NewBarChart(equity, barWidth)
	if err != nil {
		return nil, fmt.Errorf("equity bars: %w", err)
	}
	equityBars.Color = colorEquity
	equityBars.Offset = barWidth

	p.Add(callBars, revenueBars, equityBars)
	p.Legend.Add("Capital Calls", callBars)
	p.Legend.Add("Revenue Share", revenueBars)
	p.Legend.Add("Equity Exits", equityBars)
	p.Legend.Top = true
	p.NominalX(labels...)

	return renderPNG(p)
}

// DPICurve draws cumulative distributions over committed capital by year.
func DPICurve(result *domain.FundResult) ([]byte, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("DPI by Year (%s)", result.ScenarioID)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "DPI"

	pts := make(plotter.XYs, len(result.Schedule))
	for i, y := range result.Schedule {
		pts[i].X = float64(y.Year)
		pts[i].Y = y.DPI
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("dpi line: %w", err)
	}
	line.Color = colorLine
	line.Width = vg.Points(2)

	p.Add(plotter.NewGrid(), line)
	return renderPNG(p)
}

// StrategyMultiples draws realized gross MOIC per strategy bucket.
func StrategyMultiples(result *domain.FundResult) ([]byte, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Gross MOIC by Strategy (%s)", result.ScenarioID)
	p.Y.Label.Text = "MOIC (x)"

	invested := make(map[domain.StrategyKind]float64)
	proceeds := make(map[domain.StrategyKind]float64)
	for _, o := range result.Outcomes {
		invested[o.BucketKind] += o.Invested
		proceeds[o.BucketKind] += o.TotalProceeds
	}

	var (
		values plotter.Values
		labels []string
	)
	for _, kind := range domain.AllStrategyKinds {
		inv, ok := invested[kind]
		if !ok || inv == 0 {
			continue
		}
		values = append(values, proceeds[kind]/inv)
		labels = append(labels, string(kind))
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, fmt.Errorf("moic bars: %w", err)
	}
	bars.Color = colorEquity

	p.Add(bars)
	p.NominalX(labels...)
	return renderPNG(p)
}

func renderPNG(p *plot.Plot) ([]byte, error) {
	w, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("png writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	return buf.Bytes(), nil
}
