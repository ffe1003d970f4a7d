package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; everything domain-shaped lives in
// the service.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService) {
	api := app.Group("/api")
	api.Get("/health", Health())
	api.Get("/documents", ListDocuments(docSvc))
	api.Post("/documents/upload", UploadDocument(docSvc))
	api.Get("/documents/:id", DownloadDocument(docSvc))
	api.Delete("/documents/:id", DeleteDocument(docSvc))

	// Infra probes, not part of the public API surface.
	if db != nil {
		app.Get("/health", HealthCheck(db))
	}
	app.Get("/healthz", LivenessProbe())
}
