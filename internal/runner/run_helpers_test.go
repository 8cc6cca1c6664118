package runner

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"qaeval/internal/config"
	"qaeval/internal/testutil"
	"qaeval/internal/upload"
)

const fixtureQuestions = `"What is the refund window?":
  id: refund-window
  should_answer: true
  should_provide_relevant: true
  expected_answer: Refunds within 30 days
  expected_url: https://docs.example.com/refunds
  expected_keywords: [Refund, 30 days]
"Who is the CEO?":
  id: ceo
  should_answer: false
  should_provide_relevant: false
  expected_answer: NA
  expected_keywords: [ceo]
`

const fixtureReplies = `replies:
  - question: "What is the refund window?"
    answer: Refunds within 30 days of purchase
    references:
      - locator: https://docs.example.com/refunds
        title: Refunds
        content: Refund policy allows returns for 30 days.
  - question: "Who is the CEO?"
    answer: NA
`

const fixtureConfig = `version: 1
questions_file: questions.yml
output_dir: out
service:
  type: replay
  replay_file: replies.yml
  headers:
    Authorization: Bearer secret
run:
  workers: 1
`

var fixtureStart = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

const fixtureRunID = "20240506T070809Z-deadbeef"

// loadFixtureConfig writes a replay-backed project and loads its config.
func loadFixtureConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "questions.yml"), fixtureQuestions)
	writeTestFile(t, filepath.Join(dir, "replies.yml"), fixtureReplies)
	configPath := filepath.Join(dir, config.ConfigFileName)
	writeTestFile(t, configPath, fixtureConfig)
	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", filepath.Base(path), err)
	}
}

func fixedDeps() RunDependencies {
	return clockDeps(testutil.NewFakeClock(fixtureStart))
}

// clockDeps pins the run id randomness and reads time from clock.
func clockDeps(clock *testutil.FakeClock) RunDependencies {
	return RunDependencies{
		Now:  clock.Now,
		Rand: bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef}),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type runEnd struct {
	result Result
	err    error
}

// recordingObserver captures every observer callback.
type recordingObserver struct {
	mu     sync.Mutex
	starts []string
	events []QuestionEvent
	ends   []runEnd
	totals []int
}

func (r *recordingObserver) OnRunStart(runID string, questionsFile string, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts = append(r.starts, runID)
	r.totals = append(r.totals, total)
}

func (r *recordingObserver) OnQuestionEvent(event QuestionEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) OnRunEnd(result Result, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ends = append(r.ends, runEnd{result: result, err: err})
}

// recordingProvider keeps uploaded object names.
type recordingProvider struct {
	mu         sync.Mutex
	settings   map[string]any
	objects    []string
	configured bool
}

func (p *recordingProvider) Name() string {
	return "recording"
}

func (p *recordingProvider) Configure(ctx context.Context, settings map[string]any) error {
	p.settings = settings
	p.configured = true
	return nil
}

func (p *recordingProvider) Upload(ctx context.Context, reader io.Reader, remotePath string) error {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.objects = append(p.objects, remotePath)
	return nil
}

var _ upload.Provider = (*recordingProvider)(nil)
