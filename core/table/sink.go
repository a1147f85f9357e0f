package table

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"id-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
)

// Sink stores finished tables.
type Sink interface {
	// Write stores data under name, replacing any previous content atomically.
	Write(ctx context.Context, name string, data []byte) error
	// Open reads a stored table.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Location describes where name is stored, for logs.
	Location(name string) string
}

// Save renders a table in memory and writes it to the sink in one piece.
func Save(ctx context.Context, sink Sink, name string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	if err := sink.Write(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s: %w", sink.Location(name), err)
	}
	return nil
}

// LocalSink writes tables into a directory.
type LocalSink struct {
	Dir string
}

// NewLocalSink creates dir if needed.
func NewLocalSink(dir string) (*LocalSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &LocalSink{Dir: dir}, nil
}

// Location returns the file path of name.
func (s *LocalSink) Location(name string) string {
	return filepath.Join(s.Dir, name)
}

// Write stores data in a temporary file next to the target and renames it into place.
func (s *LocalSink) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.Dir, "."+name+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, s.Location(name))
}

// Open opens a stored table.
func (s *LocalSink) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.Location(name))
}

// ObjectSink uploads tables to a bucket.
type ObjectSink struct {
	Client storage.Client
	Bucket string
	Prefix string
}

// Location returns the s3 URL of name.
func (s *ObjectSink) Location(name string) string {
	return "s3://" + s.Bucket + "/" + s.key(name)
}

func (s *ObjectSink) key(name string) string {
	prefix := strings.Trim(s.Prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Write uploads data as a single object. S3 objects become visible only once
// the upload completes.
func (s *ObjectSink) Write(ctx context.Context, name string, data []byte) error {
	_, err := s.Client.PutObject(ctx, s.Bucket, s.key(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/tab-separated-values",
	})
	return err
}

// Open downloads a stored table.
func (s *ObjectSink) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.Client.GetObject(ctx, s.Bucket, s.key(name), minio.GetObjectOptions{})
}
