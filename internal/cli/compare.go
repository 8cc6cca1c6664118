package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"qaeval/internal/config"
	"qaeval/internal/duckdb"
	"qaeval/internal/report"
)

func newCompareCmd(stdout io.Writer) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "compare <base-run> <head-run>",
		Short: "Show per-metric changes between two runs",
		Long: "Runs are named by id, a unique id prefix, or \"latest\". Summaries come\n" +
			"from the run store when store.duckdb_path is set, else from the output directory.",
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			base, err := loadRunSummary(cmd.Context(), cfg, args[0])
			if err != nil {
				return fmt.Errorf("base run: %w", err)
			}
			head, err := loadRunSummary(cmd.Context(), cfg, args[1])
			if err != nil {
				return fmt.Errorf("head run: %w", err)
			}
			printComparison(stdout, base, head)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", configFlagUsage)
	return cmd
}

// loadRunSummary reads one run summary from the store or the output directory.
func loadRunSummary(ctx context.Context, cfg config.Config, runID string) (report.Summary, error) {
	if cfg.Store.DuckDBPath == "" {
		return report.ResolveSummary(cfg.OutputDir, runID)
	}
	db, err := duckdb.Open(ctx, cfg.Store.DuckDBPath)
	if err != nil {
		return report.Summary{}, err
	}
	defer db.Close()
	return duckdb.LoadRunSummary(ctx, db, runID)
}

// loadRunHistory reads every run summary from the store or the output directory.
func loadRunHistory(ctx context.Context, cfg config.Config) ([]report.Summary, error) {
	if cfg.Store.DuckDBPath == "" {
		return report.LoadSummaries(cfg.OutputDir)
	}
	db, err := duckdb.Open(ctx, cfg.Store.DuckDBPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return duckdb.ListRuns(ctx, db)
}

func printComparison(w io.Writer, base, head report.Summary) {
	fmt.Fprintf(w, "Base %s (%d questions)\n", base.RunID, base.Questions)
	fmt.Fprintf(w, "Head %s (%d questions)\n", head.RunID, head.Questions)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("metric", "base", "head", "change")
	for _, delta := range report.Compare(base, head) {
		t.Row(delta.Metric, report.FormatMetric(delta.Base), report.FormatMetric(delta.Head), report.FormatChange(delta.Change()))
	}
	fmt.Fprintln(w, t.String())
}
