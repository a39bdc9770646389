package storage

import (
	"context"
	"fmt"
	"io"

	"contacts_backend/internal/config"
)

// Storage persists uploaded files (avatars) and resolves their public URLs.
type Storage interface {
	// Save stores a file at the given key.
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get retrieves a stored file.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for a stored file.
	GetURL(ctx context.Context, key string) (string, error)
}

// New builds a Storage backend from configuration.
func New(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Type {
	case "local", "":
		return NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	case "s3":
		return NewS3Storage(cfg.Storage)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}
