package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config path constants used by the CLI and loaders.
const (
	ConfigFileName    = "qaeval.yml"
	ConfigDirName     = ".qaeval"
	ConfigDirFileName = "config.yml"
	DefaultOutputDir  = "data/test_outcomes"
)

// BaseDirFromConfigPath returns the directory relative paths in a config
// file are resolved against.
func BaseDirFromConfigPath(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) == ConfigDirName {
		return filepath.Dir(dir)
	}
	return dir
}

// FindConfigPath searches upward from startDir for qaeval.yml, qaeval.toml,
// or .qaeval/config.yml.
func FindConfigPath(startDir string) (string, error) {
	dir := strings.TrimSpace(startDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}
	dir = abs

	candidates := []string{
		ConfigFileName,
		strings.TrimSuffix(ConfigFileName, filepath.Ext(ConfigFileName)) + ".toml",
		filepath.Join(ConfigDirName, ConfigDirFileName),
	}
	for {
		for _, candidate := range candidates {
			configPath := filepath.Join(dir, candidate)
			info, err := os.Stat(configPath)
			if err == nil {
				if info.IsDir() {
					return "", fmt.Errorf("config path %q is a directory", configPath)
				}
				return configPath, nil
			}
			if !os.IsNotExist(err) {
				return "", fmt.Errorf("stat config path %q: %w", configPath, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in %s or parent directories", ConfigFileName, abs)
		}
		dir = parent
	}
}

func resolvePath(baseDir, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
