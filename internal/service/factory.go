package service

import (
	"fmt"
	"strings"
)

// Service adapter types.
const (
	TypeHTTP   = "http"
	TypeReplay = "replay"
)

// Options selects and configures an answering service adapter.
type Options struct {
	Type             string
	Endpoint         string
	Headers          map[string]string
	ReplayFile       string
	DedupeReferences bool
}

// New builds the Answerer described by opts.
func New(opts Options) (Answerer, error) {
	var (
		answerer Answerer
		err      error
	)
	switch strings.ToLower(strings.TrimSpace(opts.Type)) {
	case TypeHTTP:
		answerer, err = NewHTTPClient(HTTPOptions{Endpoint: opts.Endpoint, Headers: opts.Headers})
	case TypeReplay:
		answerer, err = LoadReplay(opts.ReplayFile)
	default:
		return nil, fmt.Errorf("unknown service type %q (expected http|replay)", opts.Type)
	}
	if err != nil {
		return nil, err
	}
	if opts.DedupeReferences {
		answerer = Deduplicating(answerer)
	}
	return answerer, nil
}
