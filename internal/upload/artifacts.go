package upload

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// Artifacts uploads each local file to <runID>/<file name> and returns the
// remote paths in input order. It stops at the first failure.
func Artifacts(ctx context.Context, provider Provider, runID string, files []string) ([]string, error) {
	remotePaths := make([]string, 0, len(files))
	for _, file := range files {
		remotePath := path.Join(runID, filepath.Base(file))
		if err := uploadFile(ctx, provider, file, remotePath); err != nil {
			return remotePaths, err
		}
		remotePaths = append(remotePaths, remotePath)
	}
	return remotePaths, nil
}

func uploadFile(ctx context.Context, provider Provider, file, remotePath string) error {
	reader, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(file), err)
	}
	defer reader.Close()
	if err := provider.Upload(ctx, reader, remotePath); err != nil {
		return fmt.Errorf("upload %s via %s: %w", filepath.Base(file), provider.Name(), err)
	}
	return nil
}
