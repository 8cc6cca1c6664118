package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"qaeval/internal/logging"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// QuestionTimeoutDuration returns the parsed per-question timeout; zero means none.
func (r RunConfig) QuestionTimeoutDuration() (time.Duration, error) {
	if r.QuestionTimeout == "" {
		return 0, nil
	}
	return time.ParseDuration(r.QuestionTimeout)
}

// Validate checks a normalized config and the files it references.
func Validate(cfg *Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if cfg.QuestionsFile == "" {
		add("questions_file", "is required")
	} else if err := checkFile(cfg.QuestionsFile); err != "" {
		add("questions_file", err)
	}
	if cfg.OutputDir == "" {
		add("output_dir", "is required")
	}

	switch cfg.Service.Type {
	case "http":
		if cfg.Service.Endpoint == "" {
			add("service.endpoint", "is required for http services")
		} else if parsed, err := url.Parse(cfg.Service.Endpoint); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			add("service.endpoint", fmt.Sprintf("invalid http url %q", cfg.Service.Endpoint))
		}
	case "replay":
		if cfg.Service.ReplayFile == "" {
			add("service.replay_file", "is required for replay services")
		} else if err := checkFile(cfg.Service.ReplayFile); err != "" {
			add("service.replay_file", err)
		}
	default:
		add("service.type", fmt.Sprintf("unsupported type %q (expected http|replay)", cfg.Service.Type))
	}
	for key := range cfg.Service.Headers {
		if strings.TrimSpace(key) == "" {
			add("service.headers", "header names must not be empty")
		}
	}

	if cfg.Run.Workers < 1 {
		add("run.workers", "must be >= 1")
	}
	if timeout, err := cfg.Run.QuestionTimeoutDuration(); err != nil {
		add("run.question_timeout", fmt.Sprintf("invalid duration %q", cfg.Run.QuestionTimeout))
	} else if timeout < 0 {
		add("run.question_timeout", "must be >= 0")
	}
	switch cfg.Run.UI {
	case "auto", "live", "plain":
	default:
		add("run.ui", fmt.Sprintf("unsupported mode %q (expected auto|live|plain)", cfg.Run.UI))
	}

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		add("log.level", err.Error())
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		add("log.format", fmt.Sprintf("unsupported format %q (expected text|json)", cfg.Log.Format))
	}

	switch cfg.Upload.Provider {
	case "":
	case "minio":
		if cfg.Upload.Endpoint == "" {
			add("upload.endpoint", "is required")
		}
		if cfg.Upload.Bucket == "" {
			add("upload.bucket", "is required")
		}
		if cfg.Upload.AccessKey == "" {
			add("upload.access_key", fmt.Sprintf("is required (or set %s)", EnvUploadAccessKey))
		}
		if cfg.Upload.SecretKey == "" {
			add("upload.secret_key", fmt.Sprintf("is required (or set %s)", EnvUploadSecretKey))
		}
	default:
		add("upload.provider", fmt.Sprintf("unsupported provider %q", cfg.Upload.Provider))
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func checkFile(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Sprintf("file not found at %q", path)
	}
	if info.IsDir() {
		return fmt.Sprintf("path %q is a directory", path)
	}
	return ""
}
