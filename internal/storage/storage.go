package storage

import (
	"context"
	"io"
)

// Uploader persists an uploaded blob and returns the path it will be served
// under. A failed upload must leave nothing referenced; callers persist record
// state only after Upload returns.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}
