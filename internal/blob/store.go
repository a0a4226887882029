// Package blob abstracts project file storage behind a small S3-like
// interface with filesystem, in-memory, and S3-compatible backends.
package blob

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifies a concrete storage backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"     // local directory (default, dev)
	DriverS3         Driver = "s3"     // S3 / MinIO compatible
	DriverMemory     Driver = "memory" // in-memory (tests)
)

// PutOptions specifies optional parameters for Put.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// Info describes a stored blob.
type Info struct {
	Key          string
	Size         int64
	ContentType  string
	Metadata     map[string]string
	LastModified time.Time
}

// ErrPresignUnsupported is returned by backends that cannot issue signed URLs.
var ErrPresignUnsupported = errors.New("blob: presigned URLs not supported by this driver")

// ErrNotExist is returned when a key has no stored blob.
var ErrNotExist = errors.New("blob: key does not exist")

// Store is the storage abstraction used by the file service.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Info, error)
	// PresignURL issues a time-limited download URL, or ErrPresignUnsupported.
	PresignURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Driver() Driver
}
