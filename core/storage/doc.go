// Package storage wraps the MinIO Go client for run snapshots kept in S3 or MinIO.
//
// Only the operations the snapshot sink needs are exposed, which keeps the
// Client interface small enough to mock (see core/storage/mocks):
//
//   - BucketExists / MakeBucket: EnsureBucket creates the snapshot bucket on first use.
//   - PutObject: uploads one finished table.
//   - GetObject: reads a prior classification table back to seed a run.
//
// Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil { ... }
package storage
