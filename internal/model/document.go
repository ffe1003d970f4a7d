package model

import "time"

// Document represents a stored PDF file in the system.
// This is a pure domain model with no database-specific dependencies or tags.
// Filename is the generated on-disk name; OriginalName is the user-supplied
// name, used only as the download hint.
type Document struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	FileSize     int64     `json:"fileSize"`
	UploadDate   time.Time `json:"uploadDate"`
}
