package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venture-fund-lab/internal/domain"
	"venture-fund-lab/internal/storage"
)

func sampleRow(runID, scenarioID string, kind domain.StrategyKind, index int) *domain.OutcomeRow {
	return &domain.OutcomeRow{
		RunID:      runID,
		ScenarioID: scenarioID,
		CompanyOutcome: domain.CompanyOutcome{
			OutcomeID:      "out",
			BucketKind:     kind,
			CompanyIndex:   index,
			Invested:       1.5,
			ExitMultiple:   3.0,
			ExitYear:       6,
			EquityExitYear: 6,
			TierLabel:      "moderate",
			EquityProceeds: 4.5,
			TotalProceeds:  4.5,
		},
	}
}

func TestCompanyOutcomeStore_InsertBulkAndGet(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCompanyOutcomeStore(conn)
	ctx := context.Background()

	rows := []*domain.OutcomeRow{
		sampleRow("run1", domain.ScenarioBase, domain.StrategySeed, 1),
		sampleRow("run1", domain.ScenarioBase, domain.StrategySeed, 0),
		sampleRow("run1", domain.ScenarioUpside, domain.StrategySeriesA, 0),
		sampleRow("run2", domain.ScenarioBase, domain.StrategySeed, 0),
	}
	require.NoError(t, store.InsertBulk(ctx, rows))

	got, err := store.GetByRunID(ctx, "run1")
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Ordered by scenario, bucket, company index.
	assert.Equal(t, domain.ScenarioBase, got[0].ScenarioID)
	assert.Equal(t, 0, got[0].CompanyIndex)
	assert.Equal(t, 1, got[1].CompanyIndex)
	assert.Equal(t, domain.ScenarioUpside, got[2].ScenarioID)

	assert.Equal(t, domain.StrategySeed, got[0].BucketKind)
	assert.Equal(t, 6, got[0].ExitYear)
	assert.InDelta(t, 4.5, got[0].TotalProceeds, 1e-12)
}

func TestCompanyOutcomeStore_GetByRunScenario(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCompanyOutcomeStore(conn)
	ctx := context.Background()

	rows := []*domain.OutcomeRow{
		sampleRow("run1", domain.ScenarioBase, domain.StrategySeed, 0),
		sampleRow("run1", domain.ScenarioDownside, domain.StrategySeed, 0),
	}
	require.NoError(t, store.InsertBulk(ctx, rows))

	got, err := store.GetByRunScenario(ctx, "run1", domain.ScenarioDownside)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.ScenarioDownside, got[0].ScenarioID)
}

func TestCompanyOutcomeStore_InvalidInput(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCompanyOutcomeStore(conn)
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.OutcomeRow{
		sampleRow("run1", domain.ScenarioBase, domain.StrategySeed, 0),
		{},
	})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}

func TestCompanyOutcomeStore_EmptyBatch(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewCompanyOutcomeStore(conn)
	assert.NoError(t, store.InsertBulk(context.Background(), nil))
}
