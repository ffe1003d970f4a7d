package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/service"
)

// UploadDocument handles multipart PDF uploads (form field: file).
//
// @Summary Upload a PDF document
// @Accept multipart/form-data
// @Param file formData file true "PDF file, at most 10MB"
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/documents/upload [post]
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "No file uploaded")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Cannot open uploaded file")
		}
		defer f.Close()

		doc, err := docSvc.Upload(c.UserContext(), f, fh.Filename, fh.Header.Get("Content-Type"), fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNoFile):
				return writeError(c, fiber.StatusBadRequest, "No file uploaded")
			case errors.Is(err, service.ErrUnsupportedType):
				return writeError(c, fiber.StatusBadRequest, "Only PDF files are allowed")
			case errors.Is(err, service.ErrTooLarge):
				return writeError(c, fiber.StatusBadRequest, "File too large. Maximum size is 10MB.")
			default:
				logServerError(c, "upload_failed", err)
				return writeError(c, fiber.StatusInternalServerError, "Error uploading file")
			}
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "File uploaded successfully",
			"data":    doc,
		})
	}
}

// ListDocuments returns every document record, newest first.
//
// @Summary List documents
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/documents [get]
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := docSvc.List(c.UserContext())
		if err != nil {
			logServerError(c, "list_failed", err)
			return writeError(c, fiber.StatusInternalServerError, "Error fetching documents")
		}
		return c.JSON(fiber.Map{
			"success": true,
			"data":    docs,
		})
	}
}

// DownloadDocument streams the stored PDF back with the original filename
// as the download hint. A missing record and a missing backing file both
// surface as 404.
//
// @Summary Download a document by id
// @Produce application/pdf
// @Param id path int true "Document ID"
// @Success 200 {file} binary
// @Router /api/documents/{id} [get]
func DownloadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			// A non-numeric id matches no record.
			return writeError(c, fiber.StatusNotFound, "Document not found")
		}

		rc, doc, err := docSvc.Download(c.UserContext(), id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "Document not found")
			case errors.Is(err, service.ErrFileMissing):
				return writeError(c, fiber.StatusNotFound, "File not found on server")
			default:
				logServerError(c, "download_failed", err)
				return writeError(c, fiber.StatusInternalServerError, "Error fetching document")
			}
		}

		c.Set(fiber.HeaderContentType, service.PDFContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.OriginalName))
		return c.SendStream(rc, int(doc.FileSize))
	}
}

// DeleteDocument removes a document's file and record.
//
// @Summary Delete a document by id
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/documents/{id} [delete]
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusNotFound, "Document not found")
		}

		if err := docSvc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "Document not found")
			}
			logServerError(c, "delete_failed", err)
			return writeError(c, fiber.StatusInternalServerError, "Error deleting document")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "File deleted successfully",
		})
	}
}
