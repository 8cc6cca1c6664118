package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"qaeval/internal/config"
)

func newInitCmd(stdout io.Writer) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config, question set, and replay fixture",
		Args:  noArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := configPath
			if path == "" {
				path = config.ConfigFileName
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}
			created, err := config.Scaffold(abs)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			for _, file := range created {
				fmt.Fprintf(stdout, "Created %s\n", file)
			}
			fmt.Fprintln(stdout, "Next: qaeval run --config", abs)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Config file to create")
	return cmd
}
