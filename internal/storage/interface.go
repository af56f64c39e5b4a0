package storage

import "context"

// Interface is the blob store behind verification document uploads.
// Implementations: Google Cloud Storage (production) and a local
// filesystem mock (development and tests).
type Interface interface {
	// Upload writes data under key with overwrite-on-conflict semantics and
	// returns the public URL of the object.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes an object. Used as the compensating action when the
	// database write after a successful upload fails.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is present and its size.
	Exists(ctx context.Context, key string) (bool, int64, error)
}
