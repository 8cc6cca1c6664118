package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"qaeval/internal/config"
	"qaeval/internal/report"
)

// RunArtifacts is everything persisted to the output directory for a run.
type RunArtifacts struct {
	StartedAt  time.Time
	Table      report.Table
	Summary    report.Summary
	Config     config.Config
	Metrics    bool
	RunSeconds float64
}

// configSnapshot is the JSON written beside the results table.
type configSnapshot struct {
	RunID     string        `json:"run_id"`
	StartedAt string        `json:"started_at"`
	Config    config.Config `json:"config"`
}

// WriteRunOutputs writes run artifacts into outputDir, creating it if needed.
func WriteRunOutputs(outputDir string, artifacts RunArtifacts) (OutputPaths, error) {
	if outputDir == "" {
		return OutputPaths{}, fmt.Errorf("output directory is required")
	}
	paths, err := NewOutputPaths(outputDir, artifacts.Summary.RunID)
	if err != nil {
		return OutputPaths{}, err
	}
	if artifacts.Table.RunID != artifacts.Summary.RunID {
		return OutputPaths{}, fmt.Errorf("table run id %q does not match summary run id %q", artifacts.Table.RunID, artifacts.Summary.RunID)
	}
	if err := os.MkdirAll(paths.Root, 0o755); err != nil {
		return OutputPaths{}, fmt.Errorf("create output dir: %w", err)
	}
	if err := report.WriteCSVFile(paths.QuestionsPath(), artifacts.Table); err != nil {
		return OutputPaths{}, err
	}
	snapshot := configSnapshot{
		RunID:     artifacts.Summary.RunID,
		StartedAt: artifacts.StartedAt.UTC().Format(time.RFC3339),
		Config:    artifacts.Config,
	}
	if err := writeJSON(paths.ConfigPath(), snapshot); err != nil {
		return OutputPaths{}, err
	}
	if err := writeJSON(paths.SummaryPath(), artifacts.Summary); err != nil {
		return OutputPaths{}, err
	}
	if artifacts.Metrics {
		if err := WriteMetricsTextfile(paths.MetricsPath(), artifacts.Summary, artifacts.RunSeconds); err != nil {
			return OutputPaths{}, err
		}
	}
	return paths, nil
}

// writeJSON writes a payload as pretty JSON.
func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
