package duckdb_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"qaeval/internal/duckdb"
	duckdbtesting "qaeval/internal/duckdb/testing"
	"qaeval/internal/question"
	"qaeval/internal/report"
	"qaeval/internal/testutil"
)

const testTimeout = 5 * time.Second

func openTestDB(t *testing.T) (*sql.DB, context.Context) {
	t.Helper()
	ctx := testutil.Context(t, testTimeout)
	return duckdbtesting.Open(t, ""), ctx
}

func queryInt(t *testing.T, ctx context.Context, db *sql.DB, query string, args ...interface{}) int {
	t.Helper()
	var out int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&out); err != nil {
		t.Fatalf("query int failed: %v", err)
	}
	return out
}

func sampleRun(runID string, startedAt time.Time, rank float64) duckdb.RunRecord {
	questions := []question.Question{
		{ID: "q1", Text: "Who was crowned?", ShouldAnswer: true, ExpectedURL: "/news", ExpectedKeywords: []string{"king"}},
		{ID: "q2", Text: "GDP of Mars?", ExpectedKeywords: []string{"gdp"}},
	}
	table := report.Table{RunID: runID, Rows: []report.TableRow{
		{Question: "Who was crowned?", Answer: "King Charles", AnswerProvided: true, TestAnswerProvided: true,
			FuzzyPartialRatio: 100, RetrievalKeywordScore: 1, CorrectDoc: true, RetrievalRank: rank,
			SectionURL: "/news/coronation", AllURLs: []string{"/news/coronation"}, PageContent: "king", SecondsToRun: 1.5, RunID: runID},
		{Question: "GDP of Mars?", Answer: "NA", TestAnswerProvided: true, AllURLs: []string{}, RetrievalRank: 1,
			Failure: "timeout", RunID: runID},
	}}
	summary, err := report.Summarize(table)
	if err != nil {
		panic(err)
	}
	return duckdb.RunRecord{
		StartedAt: startedAt,
		Config:    map[string]any{"version": 1, "service": map[string]any{"type": "replay"}},
		Questions: questions,
		Table:     table,
		Summary:   summary,
	}
}

// TestSchemaObjectsExist verifies core tables and views are created.
func TestSchemaObjectsExist(t *testing.T) {
	db, ctx := openTestDB(t)
	for _, table := range []string{"configs", "questions", "runs", "run_rows"} {
		if queryInt(t, ctx, db, "SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?", table) != 1 {
			t.Fatalf("expected table %s to exist", table)
		}
	}
	if _, err := db.ExecContext(ctx, "SELECT * FROM v_question_history LIMIT 0"); err != nil {
		t.Fatalf("query view: %v", err)
	}
	if err := duckdb.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("schema must apply twice: %v", err)
	}
}

// TestIngestRunAndLoadSummary verifies a run round-trips through the store.
func TestIngestRunAndLoadSummary(t *testing.T) {
	db, ctx := openTestDB(t)
	started := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	run := sampleRun("20240506T070809Z-aa", started, 1)
	if err := duckdb.IngestRun(ctx, db, run); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	got, err := duckdb.LoadRunSummary(ctx, db, run.Summary.RunID)
	if err != nil {
		t.Fatalf("load summary: %v", err)
	}
	want := run.Summary
	want.StartedAt = "2024-05-06T07:08:09Z"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	if rows := queryInt(t, ctx, db, "SELECT COUNT(*) FROM run_rows WHERE run_id = ?", run.Summary.RunID); rows != 2 {
		t.Fatalf("expected 2 rows, got %d", rows)
	}
	if failures := queryInt(t, ctx, db, "SELECT COUNT(*) FROM v_question_history WHERE failure = 'timeout'"); failures != 1 {
		t.Fatalf("expected 1 timeout row, got %d", failures)
	}

	if err := duckdb.IngestRun(ctx, db, run); !errors.Is(err, duckdb.ErrRunExists) {
		t.Fatalf("expected ErrRunExists, got %v", err)
	}
}

// TestIngestDeduplicatesConfigsAndQuestions verifies repeated specs are stored once.
func TestIngestDeduplicatesConfigsAndQuestions(t *testing.T) {
	db, ctx := openTestDB(t)
	base := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	if err := duckdb.IngestRun(ctx, db, sampleRun("run-a", base, 1)); err != nil {
		t.Fatalf("ingest a: %v", err)
	}
	if err := duckdb.IngestRun(ctx, db, sampleRun("run-b", base.Add(time.Hour), 0.5)); err != nil {
		t.Fatalf("ingest b: %v", err)
	}
	if configs := queryInt(t, ctx, db, "SELECT COUNT(*) FROM configs"); configs != 1 {
		t.Fatalf("expected 1 config, got %d", configs)
	}
	if questions := queryInt(t, ctx, db, "SELECT COUNT(*) FROM questions"); questions != 2 {
		t.Fatalf("expected 2 questions, got %d", questions)
	}

	runs, err := duckdb.ListRuns(ctx, db)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 || runs[0].RunID != "run-a" || runs[1].RunID != "run-b" {
		t.Fatalf("unexpected runs: %+v", runs)
	}
	latest, err := duckdb.LoadRunSummary(ctx, db, "latest")
	if err != nil {
		t.Fatalf("load latest: %v", err)
	}
	if latest.RunID != "run-b" || latest.RetrievalRank != 0.75 {
		t.Fatalf("unexpected latest run: %+v", latest)
	}
}

func TestLoadRunSummaryMissing(t *testing.T) {
	db, ctx := openTestDB(t)
	if _, err := duckdb.LoadRunSummary(ctx, db, "nope"); !errors.Is(err, report.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

// TestOpenFileDatabasePersists verifies runs survive reopening a file database.
func TestOpenFileDatabasePersists(t *testing.T) {
	ctx := testutil.Context(t, testTimeout)
	path := filepath.Join(t.TempDir(), "history.duckdb")
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := duckdb.IngestRun(ctx, db, sampleRun("run-file", time.Now(), 1)); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	reopened, err := duckdb.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if _, err := duckdb.LoadRunSummary(ctx, reopened, "run-file"); err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
}

func TestFingerprintJSONIgnoresKeyOrder(t *testing.T) {
	a, err := duckdb.FingerprintJSON(map[string]any{"a": 1, "b": []string{"x"}})
	if err != nil {
		t.Fatalf("fingerprint a: %v", err)
	}
	b, err := duckdb.FingerprintJSON([]byte(`{"b":["x"],"a":1}`))
	if err != nil {
		t.Fatalf("fingerprint b: %v", err)
	}
	if a != b {
		t.Fatalf("expected equal fingerprints, got %s and %s", a, b)
	}
}

// TestLoadRunSummaryPrefix verifies unique prefixes resolve and shared ones do not.
func TestLoadRunSummaryPrefix(t *testing.T) {
	db, ctx := openTestDB(t)
	base := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"20240506T000000Z-aa", "20240507T000000Z-bb"} {
		if err := duckdb.IngestRun(ctx, db, sampleRun(id, base.Add(time.Duration(i)*24*time.Hour), 1)); err != nil {
			t.Fatalf("ingest %s: %v", id, err)
		}
	}
	got, err := duckdb.LoadRunSummary(ctx, db, "20240507")
	if err != nil {
		t.Fatalf("load prefix: %v", err)
	}
	if got.RunID != "20240507T000000Z-bb" {
		t.Fatalf("unexpected run: %+v", got)
	}
	if _, err := duckdb.LoadRunSummary(ctx, db, "202405"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Fatalf("expected ambiguity error, got %v", err)
	}
}
