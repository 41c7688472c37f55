package domain

import "time"

// WaterfallSummary is the LP/GP split of total distributions under the
// standard American waterfall: return of capital, preferred return, GP
// catch-up, then the carry split.
type WaterfallSummary struct {
	TotalCalled      float64 `json:"total_called"`
	TotalDistributed float64 `json:"total_distributed"`

	ReturnOfCapital float64 `json:"return_of_capital"`
	PreferredReturn float64 `json:"preferred_return"`
	GPCatchUp       float64 `json:"gp_catch_up"`
	GPCarry         float64 `json:"gp_carry"`
	LPProfit        float64 `json:"lp_profit"` // profit split to LPs above the hurdle tier

	LPTotal float64 `json:"lp_total"`
	GPTotal float64 `json:"gp_total"`
	NetMOIC float64 `json:"net_moic"` // LPTotal / TotalCalled
}

// FundResult is the complete output of one engine run for one scenario.
// Constructed once per run and handed to rendering and export collaborators;
// it has no lifecycle of its own.
type FundResult struct {
	ScenarioID string `json:"scenario_id"`
	Seed       int64  `json:"seed"`

	Schedule CashFlowSchedule `json:"schedule"`
	Outcomes []CompanyOutcome `json:"outcomes"`

	GrossMOIC float64  `json:"gross_moic"`
	NetMOIC   float64  `json:"net_moic"`
	IRR       *float64 `json:"irr"` // nil when the cash flow series has no sign change

	// LPFlows is the signed year-indexed series net of carry (calls
	// negative, LP distributions positive); the IRR is solved over it.
	LPFlows []float64 `json:"lp_flows"`

	Waterfall WaterfallSummary `json:"waterfall"`
	Stats     OutcomeStats     `json:"stats"`
}

// ScenarioSummary is the persisted digest of one scenario's result.
type ScenarioSummary struct {
	ScenarioID       string   `json:"scenario_id"`
	GrossMOIC        float64  `json:"gross_moic"`
	NetMOIC          float64  `json:"net_moic"`
	IRR              *float64 `json:"irr"`
	TotalCalled      float64  `json:"total_called"`
	TotalDistributed float64  `json:"total_distributed"`
	GPCarry          float64  `json:"gp_carry"`
	LossRatio        float64  `json:"loss_ratio"`
}

// Summary digests a result for storage and the live feed.
func (r *FundResult) Summary() ScenarioSummary {
	return ScenarioSummary{
		ScenarioID:       r.ScenarioID,
		GrossMOIC:        r.GrossMOIC,
		NetMOIC:          r.NetMOIC,
		IRR:              r.IRR,
		TotalCalled:      r.Waterfall.TotalCalled,
		TotalDistributed: r.Waterfall.TotalDistributed,
		GPCarry:          r.Waterfall.GPCarry,
		LossRatio:        r.Stats.LossRatio,
	}
}

// RunRecord is one persisted model run: the parameters it was invoked with
// and the per-scenario digests, keyed by a server-assigned run id.
type RunRecord struct {
	RunID      string            `json:"run_id"`
	CreatedAt  time.Time         `json:"created_at"`
	Parameters FundParameters    `json:"parameters"`
	Summaries  []ScenarioSummary `json:"summaries"`
}

// OutcomeRow is one archived company outcome, keyed by (run, scenario,
// outcome). Rows are written once per run for cross-run analytics.
type OutcomeRow struct {
	RunID      string `json:"run_id"`
	ScenarioID string `json:"scenario_id"`
	CompanyOutcome
}
