package storage

import (
	"context"
	"io"
)

// FileStorage stores generated and uploaded files (avatars, payslips, exports).
type FileStorage interface {
	// Upload stores the content under path and returns the cleaned path
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file; missing files are not an error
	Delete(ctx context.Context, path string) error

	// GetURL returns the public URL of a stored path
	GetURL(ctx context.Context, path string) (string, error)
}
