package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"venture-fund-lab/internal/charts"
	"venture-fund-lab/internal/domain"
	"venture-fund-lab/internal/engine"
	"venture-fund-lab/internal/observability"
	"venture-fund-lab/internal/reporting"
	"venture-fund-lab/internal/storage"
)

// runResponse is the POST /api/model/run payload: the effective parameters,
// the full per-scenario results, and base64 PNG charts keyed by name.
type runResponse struct {
	RunID      string                `json:"run_id"`
	CreatedAt  time.Time             `json:"created_at"`
	Parameters domain.FundParameters `json:"parameters"`
	Results    []scenarioResult      `json:"results"`
	Report     *reporting.Report     `json:"report"`
}

type scenarioResult struct {
	*domain.FundResult
	Charts map[string]string `json:"charts"`
}

func (s *Server) handleGetParameters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.DefaultParameters())
}

// decodeParameters merges the request body over the default parameter set,
// so callers only send the fields they want to override. An empty body runs
// the defaults unchanged.
func decodeParameters(r *http.Request) (domain.FundParameters, error) {
	params := domain.DefaultParameters()
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil && !errors.Is(err, io.EOF) {
		return params, fmt.Errorf("decode parameters: %w", err)
	}
	return params, nil
}

func (s *Server) handleRunModel(w http.ResponseWriter, r *http.Request) {
	params, err := decodeParameters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	results, err := engine.RunAllScenarios(params)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			observability.RecordValidationFailure(verr.Field)
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		observability.RecordModelRun("all", "error", time.Since(start).Seconds())
		s.logger.Printf("model run: %v", err)
		writeError(w, http.StatusInternalServerError, "model run failed")
		return
	}
	observability.RecordModelRun("all", "ok", time.Since(start).Seconds())
	for _, res := range results {
		observability.RecordCompaniesSimulated(len(res.Outcomes))
		if res.IRR == nil {
			observability.RecordIRRNonConvergence()
		}
	}

	runID := uuid.NewString()
	createdAt := s.now()
	record := &domain.RunRecord{
		RunID:      runID,
		CreatedAt:  createdAt,
		Parameters: params,
	}
	for _, res := range results {
		record.Summaries = append(record.Summaries, res.Summary())
	}

	ctx := r.Context()
	dbStart := time.Now()
	err = s.runStore.Insert(ctx, record)
	observability.RecordDBQuery("runs", "insert", time.Since(dbStart).Seconds(), err)
	if err != nil {
		s.logger.Printf("persist run %s: %v", runID, err)
		writeError(w, http.StatusInternalServerError, "persist run failed")
		return
	}

	var rows []*domain.OutcomeRow
	for _, res := range results {
		for _, o := range res.Outcomes {
			rows = append(rows, &domain.OutcomeRow{
				RunID:          runID,
				ScenarioID:     res.ScenarioID,
				CompanyOutcome: o,
			})
		}
	}
	dbStart = time.Now()
	err = s.outcomeStore.InsertBulk(ctx, rows)
	observability.RecordDBQuery("outcomes", "insert_bulk", time.Since(dbStart).Seconds(), err)
	if err != nil {
		// The run record is already saved; outcome archival is best-effort.
		s.logger.Printf("archive outcomes for run %s: %v", runID, err)
	}

	report := s.generator.Generate(runID, params, results)
	observability.RecordReportGenerated()

	resp := runResponse{
		RunID:      runID,
		CreatedAt:  createdAt,
		Parameters: params,
		Report:     report,
	}
	for _, res := range results {
		resp.Results = append(resp.Results, scenarioResult{
			FundResult: res,
			Charts:     s.renderCharts(res),
		})
	}

	s.hub.Broadcast(record)
	writeJSON(w, http.StatusOK, resp)
}

// renderCharts renders the per-scenario PNGs, base64-encoded for inline
// embedding. A failed chart is logged and omitted rather than failing the run.
func (s *Server) renderCharts(res *domain.FundResult) map[string]string {
	out := make(map[string]string, 3)
	for name, render := range map[string]func(*domain.FundResult) ([]byte, error){
		"distribution_timeline": charts.DistributionTimeline,
		"dpi_curve":             charts.DPICurve,
		"strategy_multiples":    charts.StrategyMultiples,
	} {
		png, err := render(res)
		if err != nil {
			s.logger.Printf("render %s for %s: %v", name, res.ScenarioID, err)
			continue
		}
		out[name] = base64.StdEncoding.EncodeToString(png)
	}
	return out
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	records, err := s.runStore.List(r.Context(), 50)
	observability.RecordDBQuery("runs", "list", time.Since(start).Seconds(), err)
	if err != nil {
		s.logger.Printf("list runs: %v", err)
		writeError(w, http.StatusInternalServerError, "list runs failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": records})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("id")
	start := time.Now()
	record, err := s.runStore.GetByID(r.Context(), runID)
	observability.RecordDBQuery("runs", "get", time.Since(start).Seconds(), err)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		s.logger.Printf("get run %s: %v", runID, err)
		writeError(w, http.StatusInternalServerError, "get run failed")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handleExport re-runs the model with the posted parameters and streams the
// workbook. Runs are deterministic for a parameter set, so the export always
// matches what POST /api/model/run returned for the same inputs.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	params, err := decodeParameters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := engine.RunAllScenarios(params)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			observability.RecordValidationFailure(verr.Field)
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		s.logger.Printf("export run: %v", err)
		writeError(w, http.StatusInternalServerError, "model run failed")
		return
	}

	report := s.generator.Generate(uuid.NewString(), params, results)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="fund_model.xlsx"`)
	if err := reporting.RenderXLSX(report, w); err != nil {
		s.logger.Printf("render xlsx: %v", err)
		return
	}
	observability.RecordExport("xlsx")
}
