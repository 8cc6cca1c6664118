package runner

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	runIDSuffixBytes = 4
	runIDTimeLayout  = "20060102T150405Z"
)

// NewRunID returns a run id for the current time.
func NewRunID() (string, error) {
	return NewRunIDWithRand(time.Now().UTC(), rand.Reader)
}

// NewRunIDWithRand builds a run id from now and random bytes read from r.
func NewRunIDWithRand(now time.Time, r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("random reader is nil")
	}
	buf := make([]byte, runIDSuffixBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return FormatRunID(now, hex.EncodeToString(buf)), nil
}

// FormatRunID joins the UTC start time and suffix. Ids sort by start time.
func FormatRunID(now time.Time, suffix string) string {
	return now.UTC().Format(runIDTimeLayout) + "-" + suffix
}

// RunIDTime recovers the start time encoded in a run id.
func RunIDTime(runID string) (time.Time, error) {
	stamp, _, ok := strings.Cut(runID, "-")
	if !ok {
		return time.Time{}, fmt.Errorf("run id %q has no suffix", runID)
	}
	started, err := time.Parse(runIDTimeLayout, stamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("run id %q: %w", runID, err)
	}
	return started, nil
}
