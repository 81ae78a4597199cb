package domain

import (
	"context"
	"io"
)

// ListOpts carries pagination parameters for listing queries.
type ListOpts struct {
	Limit  int
	Offset int
}

// RunStore persists run summaries for operator review.
type RunStore interface {
	InsertRun(ctx context.Context, run RunSummary) error
	ListRecent(ctx context.Context, opts ListOpts) ([]RunSummary, error)
}

// BlobWriter uploads an object to cold storage.
type BlobWriter interface {
	Put(ctx context.Context, path string, data io.Reader, contentType string) error
}
