package storage

import (
	"context"
	"io"
)

// PictureStore abstracts where profile pictures live. The default backend is
// a local upload directory; a MinIO bucket can be configured instead.
type PictureStore interface {
	// Save writes the picture bytes under the given stored name.
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error

	// Open returns a reader for the stored picture and its content type.
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)

	// Remove deletes a stored picture. Removing a missing picture is not
	// an error.
	Remove(ctx context.Context, name string) error
}
