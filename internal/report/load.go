package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Artifact file name suffixes. Every artifact of a run is named
// <run_id><suffix> inside the output directory.
const (
	QuestionsSuffix = "_questions.csv"
	ConfigSuffix    = "_config.json"
	SummarySuffix   = "_summary.json"
	MetricsSuffix   = "_metrics.prom"
)

// ErrRunNotFound is returned when no artifacts exist for a run id.
var ErrRunNotFound = errors.New("run not found")

// LoadSummary reads a summary JSON artifact.
func LoadSummary(path string) (Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, err
	}
	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return Summary{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if summary.RunID == "" {
		summary.RunID = strings.TrimSuffix(filepath.Base(path), SummarySuffix)
	}
	return summary, nil
}

// LoadSummaries reads every run summary in outputDir ordered by run id,
// which orders them by start time.
func LoadSummaries(outputDir string) ([]Summary, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), SummarySuffix) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	summaries := make([]Summary, 0, len(names))
	for _, name := range names {
		summary, err := LoadSummary(filepath.Join(outputDir, name))
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ResolveSummary finds the summary for runID. A unique run id prefix is
// accepted, and "latest" picks the most recent run.
func ResolveSummary(outputDir, runID string) (Summary, error) {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return Summary{}, fmt.Errorf("run id is required")
	}
	summaries, err := LoadSummaries(outputDir)
	if err != nil {
		return Summary{}, err
	}
	if runID == "latest" {
		if len(summaries) == 0 {
			return Summary{}, fmt.Errorf("%w: no runs in %s", ErrRunNotFound, outputDir)
		}
		return summaries[len(summaries)-1], nil
	}
	var matches []Summary
	for _, summary := range summaries {
		if summary.RunID == runID {
			return summary, nil
		}
		if strings.HasPrefix(summary.RunID, runID) {
			matches = append(matches, summary)
		}
	}
	switch len(matches) {
	case 0:
		return Summary{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	case 1:
		return matches[0], nil
	default:
		return Summary{}, fmt.Errorf("run id %s is ambiguous (%d matches)", runID, len(matches))
	}
}
