package duckdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"qaeval/internal/question"
	"qaeval/internal/report"
)

// ErrRunExists is returned when a run id has already been ingested.
var ErrRunExists = errors.New("run already ingested")

// RunRecord is everything persisted for one completed run.
type RunRecord struct {
	StartedAt time.Time
	Config    interface{}
	Questions []question.Question
	Table     report.Table
	Summary   report.Summary
}

// IngestRun writes a run, its config snapshot, its questions, and every
// result row in a single transaction.
func IngestRun(ctx context.Context, db *sql.DB, run RunRecord) error {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	if run.Summary.RunID == "" {
		return errors.New("duckdb: run id is required")
	}
	if len(run.Questions) != len(run.Table.Rows) {
		return fmt.Errorf("duckdb: %d questions but %d rows", len(run.Questions), len(run.Table.Rows))
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ingest: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE run_id = ?", run.Summary.RunID).Scan(&existing); err != nil {
		return fmt.Errorf("check run: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("%w: %s", ErrRunExists, run.Summary.RunID)
	}

	configID, _, err := UpsertConfig(ctx, tx, run.Config)
	if err != nil {
		return err
	}
	summary := run.Summary
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (
		  run_id, started_at, config_id, questions, failures,
		  retrieval_keyword, retrieval_rank, retrieval_correct, answer_fuzz, answer_present
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID,
		run.StartedAt.UTC(),
		configID,
		summary.Questions,
		summary.Failures,
		summary.RetrievalKeyword,
		summary.RetrievalRank,
		summary.RetrievalCorrect,
		summary.AnswerFuzz,
		summary.AnswerPresent,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, row := range run.Table.Rows {
		questionID, _, err := UpsertQuestion(ctx, tx, run.Questions[i], run.Questions[i].Text)
		if err != nil {
			return err
		}
		allURLs, err := json.Marshal(row.AllURLs)
		if err != nil {
			return fmt.Errorf("encode all_urls: %w", err)
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO run_rows (
			  row_id, run_id, position, question_id, answer, answer_provided, test_answer_provided,
			  fuzzy_partial_ratio, retrieval_keyword_score, correct_doc, retrieval_rank,
			  section_url, all_urls, page_content, seconds_to_run, failure
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(),
			summary.RunID,
			i,
			questionID,
			row.Answer,
			row.AnswerProvided,
			row.TestAnswerProvided,
			row.FuzzyPartialRatio,
			row.RetrievalKeywordScore,
			row.CorrectDoc,
			row.RetrievalRank,
			row.SectionURL,
			string(allURLs),
			row.PageContent,
			row.SecondsToRun,
			row.Failure,
		); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ingest: %w", err)
	}
	return nil
}

const summaryColumns = `run_id, started_at, questions, failures,
  retrieval_keyword, retrieval_rank, retrieval_correct, answer_fuzz, answer_present`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(scanner rowScanner) (report.Summary, error) {
	var summary report.Summary
	var startedAt time.Time
	if err := scanner.Scan(
		&summary.RunID,
		&startedAt,
		&summary.Questions,
		&summary.Failures,
		&summary.RetrievalKeyword,
		&summary.RetrievalRank,
		&summary.RetrievalCorrect,
		&summary.AnswerFuzz,
		&summary.AnswerPresent,
	); err != nil {
		return report.Summary{}, err
	}
	summary.StartedAt = startedAt.UTC().Format(time.RFC3339)
	return summary, nil
}

// LoadRunSummary returns the stored summary for runID. A unique run id
// prefix is accepted, and "latest" selects the most recently started run.
func LoadRunSummary(ctx context.Context, db *sql.DB, runID string) (report.Summary, error) {
	if runID == "latest" {
		query := "SELECT " + summaryColumns + " FROM runs ORDER BY started_at DESC, run_id DESC LIMIT 1"
		summary, err := scanSummary(db.QueryRowContext(ctx, query))
		if errors.Is(err, sql.ErrNoRows) {
			return report.Summary{}, fmt.Errorf("%w: no stored runs", report.ErrRunNotFound)
		}
		if err != nil {
			return report.Summary{}, fmt.Errorf("load latest run: %w", err)
		}
		return summary, nil
	}
	rows, err := db.QueryContext(ctx,
		"SELECT "+summaryColumns+" FROM runs WHERE starts_with(run_id, ?) ORDER BY run_id", runID)
	if err != nil {
		return report.Summary{}, fmt.Errorf("load run %s: %w", runID, err)
	}
	defer rows.Close()
	var matches []report.Summary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return report.Summary{}, fmt.Errorf("scan run: %w", err)
		}
		if summary.RunID == runID {
			return summary, nil
		}
		matches = append(matches, summary)
	}
	if err := rows.Err(); err != nil {
		return report.Summary{}, fmt.Errorf("load run %s: %w", runID, err)
	}
	switch len(matches) {
	case 0:
		return report.Summary{}, fmt.Errorf("%w: %s", report.ErrRunNotFound, runID)
	case 1:
		return matches[0], nil
	default:
		return report.Summary{}, fmt.Errorf("run id %s is ambiguous (%d matches)", runID, len(matches))
	}
}

// ListRuns returns every stored run summary ordered by start time.
func ListRuns(ctx context.Context, db *sql.DB) ([]report.Summary, error) {
	rows, err := db.QueryContext(ctx, "SELECT "+summaryColumns+" FROM runs ORDER BY started_at, run_id")
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	var summaries []report.Summary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}
