package runner

import (
	"fmt"
	"path/filepath"
	"strings"

	"qaeval/internal/report"
)

// OutputPaths describes filesystem locations for run outputs.
type OutputPaths struct {
	Root  string
	RunID string
}

// NewOutputPaths validates and constructs output paths metadata.
func NewOutputPaths(root, runID string) (OutputPaths, error) {
	if strings.TrimSpace(root) == "" {
		return OutputPaths{}, fmt.Errorf("output root is empty")
	}
	if strings.TrimSpace(runID) == "" {
		return OutputPaths{}, fmt.Errorf("run ID is empty")
	}
	if strings.ContainsAny(runID, `/\`) {
		return OutputPaths{}, fmt.Errorf("run ID %q contains a path separator", runID)
	}
	return OutputPaths{Root: root, RunID: runID}, nil
}

func (o OutputPaths) artifact(suffix string) string {
	return filepath.Join(o.Root, o.RunID+suffix)
}

// QuestionsPath returns the path to the per-question results table.
func (o OutputPaths) QuestionsPath() string {
	return o.artifact(report.QuestionsSuffix)
}

// ConfigPath returns the path to the config snapshot.
func (o OutputPaths) ConfigPath() string {
	return o.artifact(report.ConfigSuffix)
}

// SummaryPath returns the path to the summary metrics.
func (o OutputPaths) SummaryPath() string {
	return o.artifact(report.SummarySuffix)
}

// MetricsPath returns the path to the Prometheus textfile.
func (o OutputPaths) MetricsPath() string {
	return o.artifact(report.MetricsSuffix)
}

// Files lists the artifacts written for a run, metrics last when present.
func (o OutputPaths) Files(withMetrics bool) []string {
	files := []string{o.QuestionsPath(), o.ConfigPath(), o.SummaryPath()}
	if withMetrics {
		files = append(files, o.MetricsPath())
	}
	return files
}
