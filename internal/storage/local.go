package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// localStorage implements Storage on a directory of the local filesystem.
// Writes go through a temp file, fsync, and rename so a crash or aborted
// upload never leaves a partial object under the final key.
type localStorage struct {
	baseDir string
}

// NewLocal creates a filesystem-backed Storage rooted at baseDir,
// creating the directory if needed.
func NewLocal(baseDir string) (Storage, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("storage dir is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure storage dir: %w", err)
	}
	return &localStorage{baseDir: baseDir}, nil
}

func (l *localStorage) path(key string) string {
	// Clean the key so path segments in a hostile key cannot escape baseDir.
	return filepath.Join(l.baseDir, filepath.Base(filepath.Clean(key)))
}

// Put streams the reader into a temp file and renames it into place.
func (l *localStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	select {
	case <-ctx.Done():
		return ObjectInfo{}, ctx.Err()
	default:
	}

	targetPath := l.path(key)
	tempPath := targetPath + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create temp file: %w", err)
	}

	written, err := io.Copy(file, r)
	if err != nil {
		file.Close()
		os.Remove(tempPath)
		return ObjectInfo{}, fmt.Errorf("write file: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return ObjectInfo{}, fmt.Errorf("sync file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return ObjectInfo{}, fmt.Errorf("close file: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		os.Remove(tempPath)
		return ObjectInfo{}, fmt.Errorf("rename temp file: %w", err)
	}

	return ObjectInfo{
		Key:         key,
		Size:        written,
		ContentType: opt.ContentType,
	}, nil
}

// Get opens the file behind the key for streaming.
func (l *localStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ObjectInfo{}, ctx.Err()
	default:
	}

	targetPath := l.path(key)
	file, err := os.Open(targetPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ObjectInfo{}, ErrNotExist
		}
		return nil, ObjectInfo{}, fmt.Errorf("open file: %w", err)
	}

	st, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, ObjectInfo{}, fmt.Errorf("stat file: %w", err)
	}

	return file, ObjectInfo{
		Key:          key,
		Size:         st.Size(),
		LastModified: st.ModTime(),
	}, nil
}

// Delete removes the file behind the key.
func (l *localStorage) Delete(ctx context.Context, key string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := os.Remove(l.path(key)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotExist
		}
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
