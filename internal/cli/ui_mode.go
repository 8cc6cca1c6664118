package cli

import (
	"fmt"
	"io"
	"strings"

	"qaeval/internal/runner"
)

// Progress display modes accepted by run.ui.
const (
	uiAuto  = "auto"
	uiLive  = "live"
	uiPlain = "plain"
)

// uiModeDecision records which progress display a run gets.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = runner.IsTerminal

// resolveUIMode picks the live table or plain progress lines. The live
// table needs a TTY on stdout; "live" without one degrades with a warning.
func resolveUIMode(mode string, stdout io.Writer) (uiModeDecision, error) {
	tty := stdout != nil && isTerminal(stdout)
	switch normalized := strings.ToLower(strings.TrimSpace(mode)); normalized {
	case "", uiAuto:
		return uiModeDecision{useLive: tty}, nil
	case uiLive:
		if tty {
			return uiModeDecision{useLive: true}, nil
		}
		return uiModeDecision{warning: "Live UI requested but stdout is not a TTY; falling back to plain output."}, nil
	case uiPlain:
		return uiModeDecision{}, nil
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
}
