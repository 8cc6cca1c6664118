package config

import (
	"fmt"
	"os"
)

// Environment variables that override upload credentials.
const (
	EnvUploadAccessKey = "QAEVAL_UPLOAD_ACCESS_KEY"
	EnvUploadSecretKey = "QAEVAL_UPLOAD_SECRET_KEY"
)

// Load reads, parses, normalizes, and validates a config file. Relative
// paths are resolved against the config file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return Config{}, err
	}
	ApplyEnv(&cfg, os.LookupEnv)
	Normalize(&cfg)
	ResolvePaths(&cfg, BaseDirFromConfigPath(path))
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv fills upload credentials from the environment when set.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if value, ok := lookup(EnvUploadAccessKey); ok && value != "" {
		cfg.Upload.AccessKey = value
	}
	if value, ok := lookup(EnvUploadSecretKey); ok && value != "" {
		cfg.Upload.SecretKey = value
	}
}

// ResolvePaths makes file paths absolute relative to baseDir.
func ResolvePaths(cfg *Config, baseDir string) {
	cfg.QuestionsFile = resolvePath(baseDir, cfg.QuestionsFile)
	cfg.OutputDir = resolvePath(baseDir, cfg.OutputDir)
	cfg.Service.ReplayFile = resolvePath(baseDir, cfg.Service.ReplayFile)
	cfg.Store.DuckDBPath = resolvePath(baseDir, cfg.Store.DuckDBPath)
}
