package report

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// ReportPage renders the run history page: one row per run with its metrics.
func ReportPage(summaries []Summary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!doctype html>\n<html lang=\"en\"><head><meta charset=\"utf-8\"><title>qaeval runs</title>"+pageStyle+"</head><body><h1>qaeval runs</h1>"); err != nil {
			return err
		}
		if len(summaries) == 0 {
			if _, err := io.WriteString(w, "<p>No runs recorded.</p></body></html>\n"); err != nil {
				return err
			}
			return nil
		}
		if err := summaryTable(summaries).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>\n")
		return err
	})
}

func summaryTable(summaries []Summary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		header := "<table><thead><tr><th>run</th><th>questions</th><th>failures</th>"
		for _, metric := range (Summary{}).Metrics() {
			header += "<th>" + templ.EscapeString(metric.Name) + "</th>"
		}
		header += "</tr></thead><tbody>"
		if _, err := io.WriteString(w, header); err != nil {
			return err
		}
		for i, summary := range summaries {
			var previous *Summary
			if i > 0 {
				previous = &summaries[i-1]
			}
			if err := summaryRow(summary, previous).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody></table>")
		return err
	})
}

func summaryRow(summary Summary, previous *Summary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		row := fmt.Sprintf("<tr><td>%s</td><td>%d</td><td>%d</td>",
			templ.EscapeString(summary.RunID), summary.Questions, summary.Failures)
		metrics := summary.Metrics()
		for i, metric := range metrics {
			class := ""
			if previous != nil {
				change := metric.Value - previous.Metrics()[i].Value
				switch {
				case change > 0:
					class = " class=\"up\""
				case change < 0:
					class = " class=\"down\""
				}
			}
			row += "<td" + class + ">" + templ.EscapeString(FormatMetric(metric.Value)) + "</td>"
		}
		row += "</tr>"
		_, err := io.WriteString(w, row)
		return err
	})
}

const pageStyle = `<style>
body{font-family:sans-serif;margin:2rem}
table{border-collapse:collapse}
th,td{border:1px solid #ccc;padding:.3rem .6rem;text-align:right}
td:first-child,th:first-child{text-align:left;font-family:monospace}
.up{color:#17803d}.down{color:#b42318}
</style>`
