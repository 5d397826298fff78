// Package storage abstracts where heap dumps come from and where run
// artifacts (DOT exports, summaries) go: the local filesystem by default,
// Tencent Cloud COS when configured.
package storage

import (
	"context"
	"io"

	"github.com/heap-analysis/pkg/config"
	apperrors "github.com/heap-analysis/pkg/errors"
)

// Storage is the object store used for dump retrieval and artifact
// publishing.
type Storage interface {
	// Upload stores data from reader under the given key.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// UploadFile stores a local file under the given key.
	UploadFile(ctx context.Context, key string, localPath string) error

	// Download opens the object at the given key.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// DownloadFile copies the object at the given key to a local path.
	DownloadFile(ctx context.Context, key string, localPath string) error

	// Delete removes the object at the given key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the object's URL, or its path for local storage.
	GetURL(key string) string
}

// Type identifies a storage backend.
type Type string

const (
	TypeLocal Type = "local"
	TypeCOS   Type = "cos"
)

// NewStorage creates a Storage from configuration. An empty type selects
// local storage.
func NewStorage(cfg *config.StorageConfig) (Storage, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	switch Type(cfg.Type) {
	case TypeCOS:
		return NewCOSStorage(&COSConfig{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
			Domain:    cfg.Domain,
			Scheme:    cfg.Scheme,
		})
	default:
		return NewLocalStorage(cfg.LocalPath)
	}
}

// ValidateConfig checks the storage section of the configuration.
func ValidateConfig(cfg *config.StorageConfig) error {
	if cfg == nil {
		return apperrors.New(apperrors.CodeConfigError, "storage config is nil")
	}

	switch Type(cfg.Type) {
	case "", TypeLocal:
		if cfg.LocalPath == "" {
			return apperrors.New(apperrors.CodeConfigError, "local storage path is required")
		}
	case TypeCOS:
		if cfg.Bucket == "" || cfg.Region == "" {
			return apperrors.New(apperrors.CodeConfigError, "COS bucket and region are required")
		}
		if cfg.SecretID == "" || cfg.SecretKey == "" {
			return apperrors.New(apperrors.CodeConfigError, "COS credentials are required")
		}
	default:
		return apperrors.New(apperrors.CodeConfigError, "unsupported storage type: "+cfg.Type)
	}

	return nil
}
