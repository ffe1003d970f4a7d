// Package storage contains byte-store abstractions. The default driver is
// the local filesystem; an S3-compatible driver (MinIO) is available behind
// the same interface.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotExist is returned when a key has no object behind it.
var ErrNotExist = errors.New("storage: object does not exist")

// PutObjectOptions define optional parameters for storing objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
// ContentType and Metadata are optional and ignored by drivers that cannot
// persist them.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage is a streaming byte store keyed by generated filenames.
// Methods use context and streaming readers; nothing is buffered in memory.
type Storage interface {
	// Put stores an object under the given key. A failed or aborted write
	// must leave no partial object behind.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its
	// info. Returns ErrNotExist when the key is unknown.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Returns ErrNotExist when the key is
	// unknown; callers decide whether that matters.
	Delete(ctx context.Context, key string) error
}
