package service

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"docvault/internal/model"
	repoMocks "docvault/internal/repository/mocks"
	"docvault/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Exercises the service against the real filesystem driver: the uploaded
// bytes must land on disk under the generated name, stream back on
// download, and disappear on delete.
func TestDocumentService_LocalStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocal(dir)
	require.NoError(t, err)

	ctx := context.Background()
	mRepo := new(repoMocks.MockDocumentRepository)
	svc := NewDocumentService(store, mRepo)

	content := "%PDF-1.4 round trip body"

	var storedName string
	mRepo.On("Create", ctx, mock.Anything).
		Return(func(ctx context.Context, doc *model.Document) *model.Document {
			storedName = doc.Filename
			out := *doc
			out.ID = 1
			return &out
		}, nil).Once()

	doc, err := svc.Upload(ctx, strings.NewReader(content), "trip.pdf", "application/pdf", int64(len(content)))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), doc.FileSize)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, storedName, entries[0].Name())

	mRepo.On("FindByID", ctx, int64(1)).Return(doc, nil)

	rc, got, err := svc.Download(ctx, 1)
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, content, string(body))
	assert.Equal(t, "trip.pdf", got.OriginalName)

	mRepo.On("Delete", ctx, int64(1)).Return(nil).Once()

	require.NoError(t, svc.Delete(ctx, 1))

	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, _, err = svc.Download(ctx, 1)
	assert.ErrorIs(t, err, ErrFileMissing)
}

// An upload whose stream overruns the ceiling must leave nothing on disk
// and insert no record.
func TestDocumentService_LocalStorageOversizedStream(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocal(dir)
	require.NoError(t, err)

	mRepo := new(repoMocks.MockDocumentRepository)
	svc := NewDocumentService(store, mRepo)

	// Declared size lies; the actual stream is longer than the cap.
	oversized := io.MultiReader(
		strings.NewReader(strings.Repeat("a", int(MaxUploadBytes))),
		strings.NewReader("overflow"),
	)

	_, err = svc.Upload(context.Background(), oversized, "huge.pdf", "application/pdf", 100)
	assert.True(t, errors.Is(err, ErrTooLarge))

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "aborted upload must not leave files behind")

	mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
