package ports

import (
	"context"
	"time"
)

// ObjectStore is the low-level client for the external bucket.
// Every call is at-most-once; retry, if any, is the caller's business.
type ObjectStore interface {
	// Download fetches the remote object into localPath, overwriting it.
	Download(ctx context.Context, remotePath, localPath string) error

	// Upload writes the local file to remotePath, creating or overwriting it.
	Upload(ctx context.Context, localPath, remotePath, contentType string) error

	// SignURL returns a read URL valid until now+ttl.
	// Fails if the object does not exist.
	SignURL(ctx context.Context, remotePath string, ttl time.Duration) (string, error)
}
