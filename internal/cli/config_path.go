package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"qaeval/internal/config"
)

const configFlagUsage = "Path to qaeval.yml (default: search upward for qaeval.yml or .qaeval/config.yml)"

// resolveConfigPath normalizes a config path or finds it from CWD.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadConfig resolves and loads the config file.
func loadConfig(configPath string) (config.Config, error) {
	resolved, err := resolveConfigPath(configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(resolved)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
