package runner

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"qaeval/internal/collect"
	"qaeval/internal/config"
	"qaeval/internal/duckdb"
	"qaeval/internal/eval"
	"qaeval/internal/logging"
	"qaeval/internal/question"
	"qaeval/internal/report"
	"qaeval/internal/service"
	"qaeval/internal/upload"
)

// Run evaluates every question in cfg.QuestionsFile against the configured
// answering service and writes the run artifacts.
//
// Artifacts are written before the optional store and upload steps, so a
// failure there still leaves result.Paths populated.
func Run(ctx context.Context, cfg config.Config, params RunParams) (result Result, err error) {
	logger := params.Logger
	if logger == nil {
		logger = logging.New("runner")
	}
	now := params.Deps.Now
	if now == nil {
		now = time.Now
	}
	randReader := params.Deps.Rand
	if randReader == nil {
		randReader = rand.Reader
	}

	startedAt := now().UTC()
	runID, err := NewRunIDWithRand(startedAt, randReader)
	if err != nil {
		return Result{}, err
	}
	result.RunID = runID
	result.StartedAt = startedAt

	observer := params.Observer
	if observer != nil {
		defer func() { observer.OnRunEnd(result, err) }()
	}

	set, err := question.LoadSet(cfg.QuestionsFile)
	if err != nil {
		return result, fmt.Errorf("load questions: %w", err)
	}
	set = set.Limit(params.Limit)

	answerer := params.Deps.Answerer
	if answerer == nil {
		answerer, err = service.New(service.Options{
			Type:             cfg.Service.Type,
			Endpoint:         cfg.Service.Endpoint,
			Headers:          cfg.Service.Headers,
			ReplayFile:       cfg.Service.ReplayFile,
			DedupeReferences: cfg.Service.DedupeReferences,
		})
		if err != nil {
			return result, fmt.Errorf("build service: %w", err)
		}
	}
	timeout, err := cfg.Run.QuestionTimeoutDuration()
	if err != nil {
		return result, err
	}

	if observer != nil {
		observer.OnRunStart(runID, cfg.QuestionsFile, len(set.Questions))
	}
	collector := collect.Collector{
		Answerer: answerer,
		Workers:  cfg.Run.Workers,
		Timeout:  timeout,
		Logger:   logger,
	}
	if bridge := newQuestionObserver(observer, now); bridge != nil {
		bridge.EmitQueuedAll(set.Questions)
		collector.Observer = bridge
	}

	logger.Info("run started", "run_id", runID, "questions", len(set.Questions), "workers", cfg.Run.Workers, "service", cfg.Service.Type)
	records, err := collector.CollectAll(ctx, set.Questions)
	if err != nil {
		return result, err
	}
	rows, err := eval.ScoreAll(set.Questions, records)
	if err != nil {
		return result, err
	}
	table, summary, err := report.Aggregate(runID, rows)
	if err != nil {
		return result, err
	}
	summary.StartedAt = startedAt.Format(time.RFC3339)
	result.Table = table
	result.Summary = summary

	snapshot := config.Redacted(cfg)
	paths, err := WriteRunOutputs(cfg.OutputDir, RunArtifacts{
		StartedAt:  startedAt,
		Table:      table,
		Summary:    summary,
		Config:     snapshot,
		Metrics:    cfg.Metrics.Textfile,
		RunSeconds: now().Sub(startedAt).Seconds(),
	})
	if err != nil {
		return result, err
	}
	result.Paths = paths

	if cfg.Store.DuckDBPath != "" {
		record := duckdb.RunRecord{
			StartedAt: startedAt,
			Config:    snapshot,
			Questions: set.Questions,
			Table:     table,
			Summary:   summary,
		}
		if err := storeRun(ctx, cfg.Store.DuckDBPath, record); err != nil {
			return result, err
		}
		result.Stored = true
		logger.Debug("run stored", "run_id", runID, "path", cfg.Store.DuckDBPath)
	}

	if cfg.Upload.Enabled() {
		factory := params.Deps.UploadProvider
		if factory == nil {
			factory = upload.NewProvider
		}
		uploaded, err := uploadRun(ctx, cfg.Upload, factory, runID, paths.Files(cfg.Metrics.Textfile))
		result.Uploaded = uploaded
		if err != nil {
			return result, err
		}
		logger.Debug("run uploaded", "run_id", runID, "objects", len(uploaded))
	}

	logger.Info("run finished",
		"run_id", runID,
		"questions", summary.Questions,
		"failures", summary.Failures,
		"answer_fuzz", summary.AnswerFuzz,
		"retrieval_rank", summary.RetrievalRank,
	)
	return result, nil
}

func storeRun(ctx context.Context, path string, record duckdb.RunRecord) error {
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer db.Close()
	if err := duckdb.IngestRun(ctx, db, record); err != nil {
		return fmt.Errorf("store run: %w", err)
	}
	return nil
}

func uploadRun(ctx context.Context, cfg config.UploadConfig, factory UploadProviderFactory, runID string, files []string) ([]string, error) {
	provider, err := factory(cfg.Provider)
	if err != nil {
		return nil, err
	}
	if err := provider.Configure(ctx, uploadSettings(cfg)); err != nil {
		return nil, fmt.Errorf("configure upload: %w", err)
	}
	return upload.Artifacts(ctx, provider, runID, files)
}

// uploadSettings flattens upload config into provider settings.
func uploadSettings(cfg config.UploadConfig) map[string]any {
	settings := map[string]any{
		"endpoint":   cfg.Endpoint,
		"bucket":     cfg.Bucket,
		"access_key": cfg.AccessKey,
		"secret_key": cfg.SecretKey,
		"prefix":     cfg.Prefix,
		"region":     cfg.Region,
	}
	if cfg.Secure != nil {
		settings["secure"] = *cfg.Secure
	}
	return settings
}
