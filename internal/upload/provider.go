package upload

import (
	"context"
	"io"
)

// Provider uploads run artifacts to remote storage.
type Provider interface {
	// Upload uploads content from reader to the remote path
	Upload(ctx context.Context, reader io.Reader, remotePath string) error

	// Configure sets up the provider with the given configuration
	Configure(ctx context.Context, config map[string]any) error

	// Name returns the provider name
	Name() string
}
