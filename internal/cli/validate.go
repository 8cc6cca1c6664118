package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"qaeval/internal/question"
)

func newValidateCmd(stdout io.Writer) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the config and question set without calling the service",
		Args:  noArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("validation failed:\n%w", err)
			}
			set, err := question.LoadSet(cfg.QuestionsFile)
			if err != nil {
				return fmt.Errorf("validation failed:\n%w", err)
			}
			fmt.Fprintf(stdout, "Config OK: %d questions in %s\n", len(set.Questions), cfg.QuestionsFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", configFlagUsage)
	return cmd
}
