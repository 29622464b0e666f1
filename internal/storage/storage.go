package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/appsmart/inventario/backend-go/internal/config"
)

// ErrNotFound is returned when an object key does not exist.
var ErrNotFound = errors.New("object not found")

// ObjectInfo represents metadata for a remote file/object.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ObjectStorage captures the minimal S3-compatible operations the report
// archive needs.
type ObjectStorage interface {
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	GetObject(ctx context.Context, key string) ([]byte, error)
	UploadObject(ctx context.Context, key string, data []byte) error
}

// New builds the backend selected by cfg.Driver. Local storage lives under
// dataDir.
func New(ctx context.Context, cfg config.StorageConfig, dataDir string) (ObjectStorage, error) {
	switch cfg.Driver {
	case "", config.StorageLocal:
		return NewLocalStorage(dataDir)
	case config.StorageMinio:
		client, err := NewMinioClient(ObjectStoreConfig{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			UseSSL:    cfg.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		if err := client.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return client, nil
	case config.StorageS3:
		return NewS3Client(ObjectStoreConfig{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			UseSSL:    cfg.UseSSL,
		})
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
}

// ObjectStoreConfig encapsulates the connection info for S3-compatible storage.
type ObjectStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

func (cfg ObjectStoreConfig) validate(name string) error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("%s endpoint must be provided", name)
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return fmt.Errorf("%s credentials must be provided", name)
	}
	if cfg.Bucket == "" {
		return fmt.Errorf("%s bucket must be provided", name)
	}
	return nil
}

func (cfg ObjectStoreConfig) region() string {
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}
	return region
}
