package reconciler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/jmcalloway/sportsettle/internal/domain"
)

// ReportArchiver uploads full run reports, including per-market details, to
// cold storage for offline inspection.
type ReportArchiver struct {
	writer domain.BlobWriter
	prefix string
}

// NewReportArchiver creates an archiver writing under the given key prefix,
// e.g. "runs".
func NewReportArchiver(writer domain.BlobWriter, prefix string) *ReportArchiver {
	if prefix == "" {
		prefix = "runs"
	}
	return &ReportArchiver{writer: writer, prefix: prefix}
}

// Archive serializes the summary and uploads it to
// <prefix>/<yyyy-mm-dd>/<run_id>.json.
func (a *ReportArchiver) Archive(ctx context.Context, summary domain.RunSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("reconciler: marshal run report %s: %w", summary.RunID, err)
	}

	key := path.Join(a.prefix, summary.StartedAt.Format("2006-01-02"), summary.RunID+".json")
	if err := a.writer.Put(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("reconciler: archive run report %s: %w", summary.RunID, err)
	}
	return nil
}
