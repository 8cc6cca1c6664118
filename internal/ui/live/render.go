package live

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	line := "Run " + state.RunID
	if state.QuestionsFile != "" {
		line += " | " + state.QuestionsFile
	}
	if !state.StartedAt.IsZero() {
		line += " | Elapsed: " + now.Sub(state.StartedAt).Round(100*time.Millisecond).String()
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Done: " + strconv.Itoa(counts.Done) + "/" + strconv.Itoa(state.Total) +
		" Queued: " + strconv.Itoa(counts.Queued) +
		" Running: " + strconv.Itoa(counts.Running) +
		" Answered: " + strconv.Itoa(counts.Answered) +
		" Declined: " + strconv.Itoa(counts.Declined) +
		" Timeout: " + strconv.Itoa(counts.Timeout) +
		" Error: " + strconv.Itoa(counts.Error)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	if state.Finished {
		return stylize(state.LastEvent, noColor, lipgloss.Color("42"))
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
