package runner

import (
	"io"
	"log/slog"
	"time"

	"qaeval/internal/report"
	"qaeval/internal/service"
	"qaeval/internal/upload"
)

// UploadProviderFactory builds an upload provider by name.
type UploadProviderFactory func(name string) (upload.Provider, error)

// RunDependencies allows injecting the service, clocks, and randomness.
type RunDependencies struct {
	// Answerer replaces the service built from config when set.
	Answerer       service.Answerer
	UploadProvider UploadProviderFactory
	Now            func() time.Time
	Rand           io.Reader
}

// RunParams configures a run invocation.
type RunParams struct {
	// Limit keeps the first Limit questions; zero keeps all.
	Limit    int
	Observer RunObserver
	Logger   *slog.Logger
	Deps     RunDependencies
}

// Result describes a completed run.
type Result struct {
	RunID     string
	StartedAt time.Time
	Table     report.Table
	Summary   report.Summary
	Paths     OutputPaths
	Stored    bool
	Uploaded  []string
}
