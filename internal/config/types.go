package config

// Config is the qaeval application configuration.
type Config struct {
	Version       int            `yaml:"version" toml:"version" json:"version"`
	QuestionsFile string         `yaml:"questions_file" toml:"questions_file" json:"questions_file"`
	OutputDir     string         `yaml:"output_dir" toml:"output_dir" json:"output_dir"`
	Service       ServiceConfig  `yaml:"service" toml:"service" json:"service"`
	Run           RunConfig      `yaml:"run" toml:"run" json:"run"`
	Log           LogConfig      `yaml:"log" toml:"log" json:"log"`
	Store         StoreConfig    `yaml:"store" toml:"store" json:"store"`
	Upload        UploadConfig   `yaml:"upload" toml:"upload" json:"upload"`
	Metrics       MetricsConfig  `yaml:"metrics" toml:"metrics" json:"metrics"`
	App           map[string]any `yaml:"app" toml:"app" json:"app,omitempty"`
}

// ServiceConfig selects the answering service under evaluation.
type ServiceConfig struct {
	Type             string            `yaml:"type" toml:"type" json:"type"`
	Endpoint         string            `yaml:"endpoint" toml:"endpoint" json:"endpoint,omitempty"`
	Headers          map[string]string `yaml:"headers" toml:"headers" json:"headers,omitempty"`
	ReplayFile       string            `yaml:"replay_file" toml:"replay_file" json:"replay_file,omitempty"`
	DedupeReferences bool              `yaml:"dedupe_references" toml:"dedupe_references" json:"dedupe_references"`
}

// RunConfig controls how questions are dispatched.
type RunConfig struct {
	Workers int `yaml:"workers" toml:"workers" json:"workers"`
	// QuestionTimeout is a Go duration string; empty or "0s" disables it.
	QuestionTimeout string `yaml:"question_timeout" toml:"question_timeout" json:"question_timeout,omitempty"`
	UI              string `yaml:"ui" toml:"ui" json:"ui"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level" json:"level"`
	Format string `yaml:"format" toml:"format" json:"format"`
}

// StoreConfig configures the optional run history database.
type StoreConfig struct {
	DuckDBPath string `yaml:"duckdb_path" toml:"duckdb_path" json:"duckdb_path,omitempty"`
}

// UploadConfig configures optional artifact upload to object storage.
type UploadConfig struct {
	Provider  string `yaml:"provider" toml:"provider" json:"provider,omitempty"`
	Endpoint  string `yaml:"endpoint" toml:"endpoint" json:"endpoint,omitempty"`
	Bucket    string `yaml:"bucket" toml:"bucket" json:"bucket,omitempty"`
	AccessKey string `yaml:"access_key" toml:"access_key" json:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key" toml:"secret_key" json:"secret_key,omitempty"`
	Prefix    string `yaml:"prefix" toml:"prefix" json:"prefix,omitempty"`
	Secure    *bool  `yaml:"secure" toml:"secure" json:"secure,omitempty"`
	Region    string `yaml:"region" toml:"region" json:"region,omitempty"`
}

// Enabled reports whether an upload provider is configured.
func (u UploadConfig) Enabled() bool {
	return u.Provider != ""
}

// MetricsConfig controls the Prometheus textfile artifact.
type MetricsConfig struct {
	Textfile bool `yaml:"textfile" toml:"textfile" json:"textfile"`
}
