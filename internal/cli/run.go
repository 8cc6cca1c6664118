package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"qaeval/internal/config"
	"qaeval/internal/logging"
	"qaeval/internal/report"
	"qaeval/internal/runner"
	"qaeval/internal/ui/live"
)

// runEvaluation is a test seam for the runner.
var runEvaluation = runner.Run

type runOptions struct {
	configPath string
	limit      int
}

func newRunCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Ask every question and record a scored run",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.limit < 0 {
				return usagef("-n must not be negative")
			}
			return runRun(cmd.Context(), opts, stdout, stderr)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", configFlagUsage)
	f.IntVarP(&opts.limit, "questions", "n", 0, "Evaluate only the first N questions (0 = all)")
	return cmd
}

func runRun(ctx context.Context, opts *runOptions, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logging.Init(level, cfg.Log.Format, stderr)

	decision, err := resolveUIMode(cfg.Run.UI, stdout)
	if err != nil {
		return usageError{err: err}
	}
	if decision.warning != "" {
		fmt.Fprintln(stderr, decision.warning)
	}

	var (
		observer   runner.RunObserver
		controller *live.Controller
	)
	if decision.useLive {
		controller = live.Start(stdout, live.Options{NoColor: !runner.ShouldUseStyling(stdout)})
		observer = controller
	} else {
		observer = runner.NewPlainObserver(stderr, cfg.Run.Workers, false)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	result, err := runEvaluation(ctx, cfg, runner.RunParams{
		Limit:    opts.limit,
		Observer: observer,
		Logger:   logging.New("runner"),
	})
	if controller != nil {
		controller.Wait()
	}
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	printRunResult(stdout, cfg, result)
	return nil
}

func printRunResult(w io.Writer, cfg config.Config, result runner.Result) {
	summary := result.Summary
	fmt.Fprintf(w, "Run %s\n", result.RunID)
	fmt.Fprintf(w, "Questions: %d (%d failures)\n", summary.Questions, summary.Failures)
	for _, metric := range summary.Metrics() {
		fmt.Fprintf(w, "  %-18s %s\n", metric.Name, report.FormatMetric(metric.Value))
	}
	fmt.Fprintln(w, "Artifacts:")
	for _, path := range result.Paths.Files(cfg.Metrics.Textfile) {
		fmt.Fprintf(w, "  %s\n", path)
	}
	if result.Stored {
		fmt.Fprintf(w, "Stored in %s\n", cfg.Store.DuckDBPath)
	}
	for _, object := range result.Uploaded {
		fmt.Fprintf(w, "Uploaded %s\n", object)
	}
}
