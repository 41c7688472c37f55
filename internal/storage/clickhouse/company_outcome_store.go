package clickhouse

import (
	"context"
	"fmt"

	"venture-fund-lab/internal/domain"
	"venture-fund-lab/internal/storage"
)

// CompanyOutcomeStore implements storage.CompanyOutcomeStore using ClickHouse.
// The archive is append-only and queried in bulk for cross-run analytics, so
// a MergeTree with batch inserts is a good fit.
type CompanyOutcomeStore struct {
	conn *Conn
}

// NewCompanyOutcomeStore creates a new CompanyOutcomeStore.
func NewCompanyOutcomeStore(conn *Conn) *CompanyOutcomeStore {
	return &CompanyOutcomeStore{conn: conn}
}

// Compile-time interface check.
var _ storage.CompanyOutcomeStore = (*CompanyOutcomeStore)(nil)

// InsertBulk adds multiple outcome rows. Fails the entire batch on any invalid row.
func (s *CompanyOutcomeStore) InsertBulk(ctx context.Context, rows []*domain.OutcomeRow) error {
	if len(rows) == 0 {
		return nil
	}

	for _, r := range rows {
		if r == nil || r.RunID == "" || r.ScenarioID == "" {
			return storage.ErrInvalidInput
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO company_outcomes (
			run_id, scenario_id, outcome_id,
			bucket_kind, company_index, tier_label,
			invested, exit_multiple, exit_year, equity_exit_year,
			revenue_share_proceeds, equity_proceeds, total_proceeds
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range rows {
		err = batch.Append(
			r.RunID, r.ScenarioID, r.OutcomeID,
			string(r.BucketKind), uint16(r.CompanyIndex), r.TierLabel,
			r.Invested, r.ExitMultiple, uint8(r.ExitYear), uint8(r.EquityExitYear),
			r.RevenueShareProceeds, r.EquityProceeds, r.TotalProceeds,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByRunID retrieves all rows for a run, ordered by scenario then bucket
// then company index.
func (s *CompanyOutcomeStore) GetByRunID(ctx context.Context, runID string) ([]*domain.OutcomeRow, error) {
	query := `
		SELECT
			run_id, scenario_id, outcome_id,
			bucket_kind, company_index, tier_label,
			invested, exit_multiple, exit_year, equity_exit_year,
			revenue_share_proceeds, equity_proceeds, total_proceeds
		FROM company_outcomes
		WHERE run_id = ?
		ORDER BY scenario_id ASC, bucket_kind ASC, company_index ASC
	`

	rows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query by run id: %w", err)
	}
	defer rows.Close()

	return scanOutcomeRows(rows)
}

// GetByRunScenario retrieves rows for one run/scenario combination.
func (s *CompanyOutcomeStore) GetByRunScenario(ctx context.Context, runID, scenarioID string) ([]*domain.OutcomeRow, error) {
	query := `
		SELECT
			run_id, scenario_id, outcome_id,
			bucket_kind, company_index, tier_label,
			invested, exit_multiple, exit_year, equity_exit_year,
			revenue_share_proceeds, equity_proceeds, total_proceeds
		FROM company_outcomes
		WHERE run_id = ? AND scenario_id = ?
		ORDER BY bucket_kind ASC, company_index ASC
	`

	rows, err := s.conn.Query(ctx, query, runID, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("query by run/scenario: %w", err)
	}
	defer rows.Close()

	return scanOutcomeRows(rows)
}

// Rows interface for scanning
type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanOutcomeRows scans multiple rows into a slice.
func scanOutcomeRows(rows chRows) ([]*domain.OutcomeRow, error) {
	var result []*domain.OutcomeRow

	for rows.Next() {
		var (
			r            domain.OutcomeRow
			bucketKind   string
			companyIndex uint16
			exitYear     uint8
			equityYear   uint8
		)

		err := rows.Scan(
			&r.RunID, &r.ScenarioID, &r.OutcomeID,
			&bucketKind, &companyIndex, &r.TierLabel,
			&r.Invested, &r.ExitMultiple, &exitYear, &equityYear,
			&r.RevenueShareProceeds, &r.EquityProceeds, &r.TotalProceeds,
		)
		if err != nil {
			return nil, fmt.Errorf("scan company outcome row: %w", err)
		}

		r.BucketKind = domain.StrategyKind(bucketKind)
		r.CompanyIndex = int(companyIndex)
		r.ExitYear = int(exitYear)
		r.EquityExitYear = int(equityYear)

		result = append(result, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate company outcome rows: %w", err)
	}

	return result, nil
}
