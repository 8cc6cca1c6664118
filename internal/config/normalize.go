package config

import "strings"

// Defaults applied by Normalize.
const (
	DefaultWorkers     = 1
	DefaultUIMode      = "plain"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultServiceType = "http"
	DefaultRegion      = "us-east-1"
)

// Normalize trims values and fills defaults.
func Normalize(cfg *Config) {
	cfg.QuestionsFile = strings.TrimSpace(cfg.QuestionsFile)
	cfg.OutputDir = strings.TrimSpace(cfg.OutputDir)
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	cfg.Service.Type = strings.ToLower(strings.TrimSpace(cfg.Service.Type))
	if cfg.Service.Type == "" {
		cfg.Service.Type = DefaultServiceType
	}
	cfg.Service.Endpoint = strings.TrimSpace(cfg.Service.Endpoint)

	if cfg.Run.Workers == 0 {
		cfg.Run.Workers = DefaultWorkers
	}
	cfg.Run.QuestionTimeout = strings.TrimSpace(cfg.Run.QuestionTimeout)
	cfg.Run.UI = strings.ToLower(strings.TrimSpace(cfg.Run.UI))
	if cfg.Run.UI == "" {
		cfg.Run.UI = DefaultUIMode
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	cfg.Upload.Provider = strings.ToLower(strings.TrimSpace(cfg.Upload.Provider))
	cfg.Upload.Prefix = strings.Trim(strings.TrimSpace(cfg.Upload.Prefix), "/")
	if cfg.Upload.Enabled() {
		if cfg.Upload.Secure == nil {
			secure := true
			cfg.Upload.Secure = &secure
		}
		if cfg.Upload.Region == "" {
			cfg.Upload.Region = DefaultRegion
		}
	}
}
