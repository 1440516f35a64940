package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/yukikurage/task-rewards-api/internal/config"
	"go.uber.org/zap"
)

// Storage keeps card images. Save returns a reference that Delete and URL accept.
type Storage interface {
	// Save stores size bytes from r under name
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)

	// Delete removes a stored asset. Deleting a missing asset is not an error.
	Delete(ctx context.Context, ref string) error

	// URL resolves a reference to a URL the client can fetch
	URL(ref string) string

	// Name is the provider name (local, s3)
	Name() string
}

// New builds the storage backend selected by cfg.Driver.
func New(cfg config.StorageConfig, log *zap.Logger) (Storage, error) {
	switch cfg.Driver {
	case "local", "":
		local, err := NewLocalStorage(LocalStorageConfig{
			BasePath: cfg.LocalDir,
			BaseURL:  cfg.PublicURL,
		})
		if err != nil {
			return nil, err
		}
		return local, nil
	case "s3":
		s3, err := NewS3Storage(S3StorageConfig{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
			Region:    cfg.S3Region,
			PublicURL: cfg.PublicURL,
		}, log)
		if err != nil {
			return nil, err
		}
		return s3, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
