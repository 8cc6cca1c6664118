package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownQuestion is returned by Replay for questions missing from its fixture.
var ErrUnknownQuestion = errors.New("no recorded reply for question")

// ReplayEntry is one recorded reply in a replay fixture.
type ReplayEntry struct {
	Question   string      `yaml:"question"`
	Answer     string      `yaml:"answer"`
	References []Reference `yaml:"references"`
}

type replayFile struct {
	Replies []ReplayEntry `yaml:"replies"`
}

// Replay answers from recorded replies keyed by question text.
type Replay struct {
	replies map[string]Reply
}

// NewReplay builds a Replay from entries; repeated questions are an error.
func NewReplay(entries []ReplayEntry) (*Replay, error) {
	replies := make(map[string]Reply, len(entries))
	for i, entry := range entries {
		key := strings.TrimSpace(entry.Question)
		if key == "" {
			return nil, fmt.Errorf("replies[%d].question is required", i)
		}
		if _, exists := replies[key]; exists {
			return nil, fmt.Errorf("replies[%d]: duplicate question %q", i, key)
		}
		refs := make([]Reference, len(entry.References))
		copy(refs, entry.References)
		replies[key] = Reply{Answer: entry.Answer, References: refs}
	}
	return &Replay{replies: replies}, nil
}

// LoadReplay reads a YAML or JSON replay fixture.
func LoadReplay(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay file: %w", err)
	}
	var file replayFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse replay file: %w", err)
	}
	return NewReplay(file.Replies)
}

// Answer returns a copy of the recorded reply.
func (r *Replay) Answer(ctx context.Context, question string) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	reply, ok := r.replies[strings.TrimSpace(question)]
	if !ok {
		return Reply{}, fmt.Errorf("%w: %q", ErrUnknownQuestion, question)
	}
	refs := make([]Reference, len(reply.References))
	copy(refs, reply.References)
	return Reply{Answer: reply.Answer, References: refs}, nil
}
