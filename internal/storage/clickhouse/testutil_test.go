package clickhouse

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a ClickHouse container, creates the schema, and
// returns a connection. The cleanup function must be called when done.
func setupTestDB(t *testing.T) (*Conn, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "clickhouse/clickhouse-server:24.1-alpine",
		ExposedPorts: []string{"9000/tcp", "8123/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Application: Ready for connections").
				WithStartupTimeout(60 * time.Second),
			wait.ForListeningPort("9000/tcp"),
		),
		Env: map[string]string{
			"CLICKHOUSE_DB":       "test",
			"CLICKHOUSE_USER":     "default",
			"CLICKHOUSE_PASSWORD": "",
		},
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "9000")
	require.NoError(t, err)

	dsn := fmt.Sprintf("clickhouse://%s:%s/test", host, port.Port())

	conn, err := NewConn(ctx, dsn)
	require.NoError(t, err)

	// The schema matches storage/migrations/clickhouse but is applied
	// inline; importing the migrations package here would be an import
	// cycle (it imports this package for the Conn).
	err = conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS company_outcomes (
			run_id                  String,
			scenario_id             LowCardinality(String),
			outcome_id              String,
			bucket_kind             LowCardinality(String),
			company_index           UInt16,
			tier_label              LowCardinality(String),
			invested                Float64,
			exit_multiple           Float64,
			exit_year               UInt8,
			equity_exit_year        UInt8,
			revenue_share_proceeds  Float64,
			equity_proceeds         Float64,
			total_proceeds          Float64
		)
		ENGINE = MergeTree()
		ORDER BY (run_id, scenario_id, bucket_kind, company_index)
	`)
	require.NoError(t, err)

	cleanup := func() {
		conn.Close()
		_ = container.Terminate(ctx)
	}

	return conn, cleanup
}
