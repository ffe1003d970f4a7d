package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"docvault/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		Filename:     "doc-1700000000000-123456789.pdf",
		OriginalName: "report.pdf",
		FileSize:     2048,
	}

	rows := sqlmock.NewRows([]string{"id", "filename", "original_name", "file_size", "upload_date"}).
		AddRow(int64(1), doc.Filename, doc.OriginalName, doc.FileSize, now)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.Filename, doc.OriginalName, doc.FileSize).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, now, result.UploadDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "filename", "original_name", "file_size", "upload_date"}).
			AddRow(int64(7), "doc-1-2.pdf", "a.pdf", int64(100), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs(int64(7)).
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, 7)

		assert.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Equal(t, int64(7), doc.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, 99)

		assert.Error(t, err)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("newest first", func(t *testing.T) {
		older := time.Now().Add(-time.Hour)
		newer := time.Now()

		rows := sqlmock.NewRows([]string{"id", "filename", "original_name", "file_size", "upload_date"}).
			AddRow(int64(2), "doc-2-2.pdf", "b.pdf", int64(500), newer).
			AddRow(int64(1), "doc-1-1.pdf", "a.pdf", int64(2000), older)

		mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY upload_date DESC").
			WillReturnRows(rows)

		docs, err := repo.List(ctx)

		assert.NoError(t, err)
		assert.Len(t, docs, 2)
		assert.Equal(t, "b.pdf", docs[0].OriginalName)
		assert.Equal(t, "a.pdf", docs[1].OriginalName)
	})

	t.Run("empty table", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "filename", "original_name", "file_size", "upload_date"})

		mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY upload_date DESC").
			WillReturnRows(rows)

		docs, err := repo.List(ctx)

		assert.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Len(t, docs, 0)
	})
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents WHERE id = ?").
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows affected is not an error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents WHERE id = ?").
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Delete(ctx, 42))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
