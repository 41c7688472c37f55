package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venture-fund-lab/internal/domain"
	"venture-fund-lab/internal/storage/memory"
)

func newTestServer(t *testing.T) (*Server, *memory.RunRecordStore, *memory.CompanyOutcomeStore) {
	t.Helper()
	runs := memory.NewRunRecordStore()
	outcomes := memory.NewCompanyOutcomeStore()
	logger := log.New(io.Discard, "", 0)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	srv := NewServer(runs, outcomes, logger).WithClock(func() time.Time { return fixed })
	return srv, runs, outcomes
}

func TestGetParameters(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/model/parameters", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var params domain.FundParameters
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &params))
	assert.Equal(t, 50.0, params.FundSize)
	assert.Len(t, params.Buckets, 5)
}

func TestRunModelDefaults(t *testing.T) {
	srv, runs, outcomes := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/model/run", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RunID)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, domain.ScenarioDownside, resp.Results[0].ScenarioID)
	assert.Equal(t, domain.ScenarioUpside, resp.Results[2].ScenarioID)
	assert.Less(t, resp.Results[0].GrossMOIC, resp.Results[2].GrossMOIC)
	require.NotNil(t, resp.Report)
	assert.Equal(t, resp.RunID, resp.Report.RunID)
	for _, res := range resp.Results {
		assert.Contains(t, res.Charts, "distribution_timeline")
		assert.Contains(t, res.Charts, "dpi_curve")
		assert.Contains(t, res.Charts, "strategy_multiples")
	}

	// The run and its outcomes are persisted.
	ctx := context.Background()
	record, err := runs.GetByID(ctx, resp.RunID)
	require.NoError(t, err)
	assert.Len(t, record.Summaries, 3)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), record.CreatedAt)

	rows, err := outcomes.GetByRunID(ctx, resp.RunID)
	require.NoError(t, err)
	assert.Len(t, rows, 3*27)
}

func TestRunModelOverrides(t *testing.T) {
	srv, _, _ := newTestServer(t)

	body := `{"fund_size": 100.0, "carried_interest_rate": 0.25}`
	req := httptest.NewRequest(http.MethodPost, "/api/model/run", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 100.0, resp.Parameters.FundSize)
	assert.Equal(t, 0.25, resp.Parameters.CarriedInterestRate)
	// Unspecified fields keep their defaults.
	assert.Equal(t, 10, resp.Parameters.FundLife)
}

func TestRunModelValidationFailure(t *testing.T) {
	srv, runs, _ := newTestServer(t)

	body := `{"fund_size": -1}`
	req := httptest.NewRequest(http.MethodPost, "/api/model/run", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "fund_size")

	// Nothing persisted on a rejected run.
	records, err := runs.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRunModelMalformedBody(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/model/run", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAndGetRuns(t *testing.T) {
	srv, _, _ := newTestServer(t)
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/model/run", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/model/runs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var listResp struct {
		Runs []*domain.RunRecord `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResp))
	require.Len(t, listResp.Runs, 1)
	assert.Equal(t, resp.RunID, listResp.Runs[0].RunID)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/model/runs/"+resp.RunID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var record domain.RunRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, resp.RunID, record.RunID)
	assert.Len(t, record.Summaries, 3)
}

func TestGetRunNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/model/runs/no-such-run", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportXLSX(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/model/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "fund_model.xlsx")
	// xlsx is a zip archive.
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestExportValidationFailure(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/model/export", strings.NewReader(`{"fund_life": 0}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndStatus(t *testing.T) {
	srv, _, _ := newTestServer(t)
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	var status map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
}
