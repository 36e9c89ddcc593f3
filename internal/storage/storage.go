// Package storage uploads salon images to object storage.
package storage

import (
	"context"
	"io"
)

type Uploader interface {
	// Upload stores body under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
