package chat

import (
	"context"
	"fmt"
	"os"
	"strings"

	"healthai-backend/internal/report"
)

// Reporter fetches a rendered report for the displayed labels.
type Reporter interface {
	Report(ctx context.Context, snap Snapshot) ([]byte, error)
}

// ExportReport downloads the report for snap, checks it is a readable PDF and
// writes it to path (report.FileName when blank).
func ExportReport(ctx context.Context, r Reporter, snap Snapshot, path string) (string, report.Summary, error) {
	if strings.TrimSpace(path) == "" {
		path = report.FileName
	}
	data, err := r.Report(ctx, snap)
	if err != nil {
		return "", report.Summary{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	summary, err := report.Inspect(data)
	if err != nil {
		return "", report.Summary{}, fmt.Errorf("downloaded report unreadable: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", report.Summary{}, fmt.Errorf("save report: %w", err)
	}
	return path, summary, nil
}
