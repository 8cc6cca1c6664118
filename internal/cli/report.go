package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"qaeval/internal/report"
)

const reportFileName = "report.html"

func newReportCmd(stdout io.Writer) *cobra.Command {
	var configPath, outputPath string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render an HTML trend report over all recorded runs",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			summaries, err := loadRunHistory(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("load runs: %w", err)
			}
			path := outputPath
			if path == "" {
				path = filepath.Join(cfg.OutputDir, reportFileName)
			}
			if err := report.WriteReportHTML(cmd.Context(), summaries, path); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Report for %d runs written to %s\n", len(summaries), path)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", configFlagUsage)
	f.StringVar(&outputPath, "output", "", "Report file (default: <output_dir>/report.html)")
	return cmd
}
