package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"path/filepath"
	"time"

	"docvault/internal/model"
	"docvault/internal/repository"
	"docvault/internal/storage"
)

const (
	// MaxUploadBytes is the upload size ceiling (10MB).
	MaxUploadBytes int64 = 10 * 1024 * 1024
	// PDFContentType is the only media type accepted for uploads.
	PDFContentType = "application/pdf"
)

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrUnsupportedType = errors.New("only PDF files are allowed")
	ErrTooLarge        = errors.New("file too large")
	ErrNotFound        = errors.New("document not found")
	// ErrFileMissing covers a record whose backing file is gone from the
	// store. Externally indistinguishable from ErrNotFound (both 404).
	ErrFileMissing = errors.New("file not found on server")
)

// DocumentService defines the use cases for handling PDF documents.
type DocumentService interface {
	// Upload validates the payload, streams it into storage under a
	// generated name, and inserts the metadata record. If the insert fails
	// the stored object is deleted again (compensating action).
	Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error)

	// List returns every document, newest first.
	List(ctx context.Context) ([]model.Document, error)

	// Download returns the raw content stream and the record for an id.
	// The caller owns the returned ReadCloser.
	Download(ctx context.Context, id int64) (io.ReadCloser, *model.Document, error)

	// Delete removes the backing file (best effort) and the record.
	Delete(ctx context.Context, id int64) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store storage.Storage
	repo  repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository) DocumentService {
	return &documentService{store: store, repo: repo}
}

// newStoredName generates the on-disk filename: doc-<millis>-<random><ext>.
// Collisions are improbable, not impossible; the scheme is part of the
// external contract, so it stays.
func newStoredName(originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	return fmt.Sprintf("doc-%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1_000_000_000), ext)
}

// cappedReader fails the stream once more than max bytes have been read, so
// an oversized upload is rejected mid-write instead of after full buffering.
type cappedReader struct {
	r         io.Reader
	remaining int64
}

func newCappedReader(r io.Reader, max int64) *cappedReader {
	return &cappedReader{r: r, remaining: max}
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.remaining < 0 {
		return 0, ErrTooLarge
	}
	if int64(len(p)) > c.remaining+1 {
		p = p[:c.remaining+1]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return n, ErrTooLarge
	}
	return n, err
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error) {
	// Validation happens before anything durable is touched.
	if r == nil {
		return nil, ErrNoFile
	}
	if contentType != PDFContentType {
		return nil, ErrUnsupportedType
	}
	if size > MaxUploadBytes {
		return nil, ErrTooLarge
	}

	storedName := newStoredName(originalFilename)

	// The cap is enforced again while streaming in case the declared size
	// lied; the storage driver discards the partial write on error.
	info, err := s.store.Put(ctx, storedName, newCappedReader(r, MaxUploadBytes), storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		if errors.Is(err, ErrTooLarge) {
			return nil, ErrTooLarge
		}
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		Filename:     storedName,
		OriginalName: originalFilename,
		FileSize:     info.Size,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object so no orphan file outlives the failure.
		if delErr := s.store.Delete(ctx, storedName); delErr != nil {
			logRollbackFailure(storedName, err, delErr)
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// logRollbackFailure records the one failure mode that leaves an orphan
// file in storage, so the stored name can be cleaned up by hand.
func logRollbackFailure(storedName string, createErr, deleteErr error) {
	entry := map[string]any{
		"ts":           time.Now().UTC().Format(time.RFC3339Nano),
		"level":        "error",
		"component":    "service",
		"event":        "upload_rollback_failed",
		"msg":          "orphaned file left in storage",
		"stored_name":  storedName,
		"create_error": createErr.Error(),
		"delete_error": deleteErr.Error(),
	}
	if b, err := json.Marshal(entry); err == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}

// List returns every document, newest first.
func (s *documentService) List(ctx context.Context) ([]model.Document, error) {
	return s.repo.List(ctx)
}

// Download looks up the record and opens the backing file for streaming.
func (s *documentService) Download(ctx context.Context, id int64) (io.ReadCloser, *model.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	rc, info, err := s.store.Get(ctx, doc.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, nil, ErrFileMissing
		}
		return nil, nil, fmt.Errorf("read storage: %w", err)
	}

	// The store's stat size is what will actually be streamed; trust it over
	// the recorded size in case the two ever disagree.
	doc.FileSize = info.Size

	return rc, doc, nil
}

// Delete removes the backing file, then the record. A file already missing
// from the store does not block record removal.
func (s *documentService) Delete(ctx context.Context, id int64) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := s.store.Delete(ctx, doc.Filename); err != nil && !errors.Is(err, storage.ErrNotExist) {
		return fmt.Errorf("delete storage: %w", err)
	}

	// Repository tolerates zero affected rows, so a racing delete is safe.
	return s.repo.Delete(ctx, id)
}
