package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"qaeval/internal/report"
	"qaeval/internal/runner"
)

// formatQuestionID returns the display id for a question row.
func formatQuestionID(row QuestionRow) string {
	if row.ID != "" && row.ID != row.Text {
		return row.ID
	}
	return formatIndex(row.Index)
}

// formatIndex formats a question index.
func formatIndex(index int) string {
	return "Q" + pad2(index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return strconv.Itoa(value)
	}
	return "0" + strconv.Itoa(value)
}

// formatQuestionText truncates question text for display.
func formatQuestionText(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	runes := []rune(normalized)
	if limit <= 3 || len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}

// formatStatus renders a status string for a row.
func formatStatus(row QuestionRow, noColor bool) string {
	label := statusLabel(row)
	if noColor {
		return label
	}
	return statusStyle(row).Render(label)
}

// statusLabel maps a row status to a display label.
func statusLabel(row QuestionRow) string {
	switch row.Status {
	case runner.QuestionAnswered:
		if !row.AnswerProvided {
			return "declined"
		}
		return "answered"
	case runner.QuestionTimeout:
		return "timeout"
	case runner.QuestionError:
		return "error"
	default:
		return string(row.Status)
	}
}

// statusStyle selects a style for a row status.
func statusStyle(row QuestionRow) lipgloss.Style {
	color := lipgloss.Color("246")
	switch row.Status {
	case runner.QuestionAnswered:
		color = lipgloss.Color("42")
		if !row.AnswerProvided {
			color = lipgloss.Color("220")
		}
	case runner.QuestionTimeout, runner.QuestionError:
		color = lipgloss.Color("196")
	case runner.QuestionRunning:
		color = lipgloss.Color("33")
	}
	return lipgloss.NewStyle().Foreground(color)
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row QuestionRow, now time.Time) string {
	if row.Elapsed > 0 {
		return formatDuration(row.Elapsed)
	}
	if !row.StartedAt.IsZero() && row.FinishedAt.IsZero() {
		return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	return ""
}

// formatReferences formats a reference count once a row is done.
func formatReferences(row QuestionRow) string {
	if row.Status != runner.QuestionAnswered {
		return ""
	}
	return strconv.Itoa(row.References)
}

// formatRunEnd formats the footer message for a finished run.
func formatRunEnd(summary report.Summary, errText string) string {
	if errText != "" {
		return "Run failed: " + errText
	}
	parts := make([]string, 0, len(summary.Metrics()))
	for _, metric := range summary.Metrics() {
		parts = append(parts, metric.Name+"="+report.FormatMetric(metric.Value))
	}
	return "Run finished: " + strings.Join(parts, " ")
}
