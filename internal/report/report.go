package report

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// RenderReportHTML renders the run history report into a string.
func RenderReportHTML(ctx context.Context, summaries []Summary) (string, error) {
	var builder strings.Builder
	if err := ReportPage(summaries).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// WriteReportHTML renders the report for summaries to path.
func WriteReportHTML(ctx context.Context, summaries []Summary, path string) error {
	html, err := RenderReportHTML(ctx, summaries)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
