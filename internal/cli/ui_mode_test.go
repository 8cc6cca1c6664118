package cli

import (
	"bytes"
	"io"
	"testing"
)

// TestResolveUIMode verifies mode selection against TTY detection.
func TestResolveUIMode(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })

	cases := []struct {
		name    string
		mode    string
		tty     bool
		live    bool
		warning bool
	}{
		{name: "auto-tty", mode: "auto", tty: true, live: true},
		{name: "auto-pipe", mode: "", tty: false, live: false},
		{name: "live-tty", mode: "LIVE", tty: true, live: true},
		{name: "live-pipe", mode: "live", tty: false, live: false, warning: true},
		{name: "plain-tty", mode: "plain", tty: true, live: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isTerminal = func(io.Writer) bool { return tc.tty }
			decision, err := resolveUIMode(tc.mode, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if decision.useLive != tc.live {
				t.Fatalf("expected live=%v, got %v", tc.live, decision.useLive)
			}
			if (decision.warning != "") != tc.warning {
				t.Fatalf("unexpected warning %q", decision.warning)
			}
		})
	}
	if _, err := resolveUIMode("fancy", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected invalid mode error")
	}
}
