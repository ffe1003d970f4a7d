package handler

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/http/middleware"
)

// errorPayload is the JSON error envelope shared by every endpoint.
type errorPayload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking
// internal error detail to the caller.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{Success: false, Message: message})
}

// logServerError records the underlying cause of a 500 response. Clients
// only see the generic envelope; the detail lands here.
func logServerError(c *fiber.Ctx, event string, err error) {
	rid, _ := c.Locals(middleware.RequestIDLocalKey).(string)
	entry := map[string]any{
		"ts":         time.Now().UTC().Format(time.RFC3339Nano),
		"level":      "error",
		"component":  "http",
		"event":      event,
		"request_id": rid,
		"method":     c.Method(),
		"path":       c.Path(),
		"error":      err.Error(),
	}
	if b, marshalErr := json.Marshal(entry); marshalErr == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses. A 413 from the framework's body limit is translated to the
// API's 400 "too large" answer.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, fiber.StatusBadRequest, "File too large. Maximum size is 10MB.")
		case fiber.StatusBadRequest:
			return writeError(c, status, "Bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "Resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "Method not allowed")
		default:
			logServerError(c, "request_failed", err)
			return writeError(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}
}
