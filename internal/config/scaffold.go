package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1
questions_file: questions.toml
output_dir: data/test_outcomes

service:
  type: replay
  endpoint: http://localhost:8000/search
  replay_file: replies.yml
  dedupe_references: true

run:
  workers: 1
  question_timeout: 60s
  ui: auto

log:
  level: info
  format: text

metrics:
  textfile: false
`

const defaultQuestions = `["What was the population of England and Wales in 2021?"]
should_answer = true
should_provide_relevant = true
expected_answer = "59.6 million"
expected_url = "/census2021"
expected_keywords = ["population", "census"]

["What is the GDP of Mars?"]
should_answer = false
should_provide_relevant = false
expected_answer = ""
expected_url = ""
expected_keywords = ["gdp"]
`

const defaultReplies = `replies:
  - question: "What was the population of England and Wales in 2021?"
    answer: "The census recorded 59.6 million people."
    references:
      - locator: "https://example.org/census2021/population"
        title: "Population estimates"
        content: "Census 2021 population estimates for England and Wales."
  - question: "What is the GDP of Mars?"
    answer: "NA"
    references: []
`

// Scaffold writes a starter config, question set, and replay fixture into
// the directory of configPath. Existing files are never overwritten.
func Scaffold(configPath string) ([]string, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config path is required")
	}
	dir := filepath.Dir(configPath)
	files := []struct {
		path    string
		content string
	}{
		{configPath, defaultConfig},
		{filepath.Join(dir, "questions.toml"), defaultQuestions},
		{filepath.Join(dir, "replies.yml"), defaultReplies},
	}
	for _, file := range files {
		if info, err := os.Stat(file.path); err == nil {
			if info.IsDir() {
				return nil, fmt.Errorf("path %q is a directory", file.path)
			}
			return nil, fmt.Errorf("file already exists at %q", file.path)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	written := make([]string, 0, len(files))
	for _, file := range files {
		if err := os.WriteFile(file.path, []byte(file.content), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", filepath.Base(file.path), err)
		}
		written = append(written, file.path)
	}
	return written, nil
}
