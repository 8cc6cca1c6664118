package duckdbtesting

import (
	"database/sql"
	"testing"
	"time"

	"qaeval/internal/duckdb"
	"qaeval/internal/report"
	"qaeval/internal/testutil"
)

// Open opens a run store with the schema applied and closes it when the
// test ends.
func Open(t testing.TB, dsn string) *sql.DB {
	t.Helper()
	conn, err := duckdb.Open(testutil.Context(t, 0), dsn)
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

// Seed writes summary-only runs into the store file at path and closes it,
// leaving the file free for the code under test to open.
func Seed(t testing.TB, path string, summaries ...report.Summary) {
	t.Helper()
	ctx := testutil.Context(t, 0)
	conn, err := duckdb.Open(ctx, path)
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	defer conn.Close()
	for _, summary := range summaries {
		startedAt, err := time.Parse(time.RFC3339, summary.StartedAt)
		if err != nil {
			t.Fatalf("run %s: started_at %q: %v", summary.RunID, summary.StartedAt, err)
		}
		record := duckdb.RunRecord{
			StartedAt: startedAt,
			Config:    map[string]any{"seeded": true},
			Table:     report.Table{RunID: summary.RunID},
			Summary:   summary,
		}
		if err := duckdb.IngestRun(ctx, conn, record); err != nil {
			t.Fatalf("seed run %s: %v", summary.RunID, err)
		}
	}
}
