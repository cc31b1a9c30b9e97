package storage

import (
	"context"
	"fmt"

	"homebase/app/config"
)

// Logical store namespaces within the configured backend.
const (
	BlogNamespace   = "blog"
	BackupNamespace = "backups"
)

// Open creates the configured backend and returns the blog and backup blob
// stores plus a close function for the underlying resources.
func Open(ctx context.Context, cfg *config.Server) (blog, backups BlobStore, closeFn func() error, err error) {
	switch cfg.StorageBackend {
	case "badger":
		db, err := OpenBadger(cfg.BadgerPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open badger at %s: %w", cfg.BadgerPath, err)
		}
		return NewBadgerStore(db, BlogNamespace), NewBadgerStore(db, BackupNamespace), db.Close, nil

	case "s3":
		client, err := NewS3Client(ctx, S3Config{
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Region:    cfg.S3Region,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		noop := func() error { return nil }
		return NewS3Store(client, cfg.S3Bucket, BlogNamespace),
			NewS3Store(client, cfg.S3Bucket, BackupNamespace), noop, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}
