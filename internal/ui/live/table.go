package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	idWidth       = 14
	statusWidth   = 10
	elapsedWidth  = 9
	refsWidth     = 5
	minQuestion   = 20
	defaultWidth  = 100
	columnPadding = 2
)

// defaultColumns returns the table columns for an unknown terminal width.
func defaultColumns() []table.Column {
	return columnsForWidth(defaultWidth)
}

// columnsForWidth sizes the question column to the remaining width.
func columnsForWidth(width int) []table.Column {
	fixed := idWidth + statusWidth + elapsedWidth + refsWidth + 5*columnPadding
	question := max(width-fixed, minQuestion)
	return []table.Column{
		{Title: "ID", Width: idWidth},
		{Title: "Question", Width: question},
		{Title: "Status", Width: statusWidth},
		{Title: "Time", Width: elapsedWidth},
		{Title: "Refs", Width: refsWidth},
	}
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, questionWidth int, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatQuestionID(row),
			formatQuestionText(row.Text, questionWidth),
			formatStatus(row, noColor),
			formatRowDuration(row, now),
			formatReferences(row),
		})
	}
	return rows
}
