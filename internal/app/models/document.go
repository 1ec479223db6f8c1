package models

import "time"

// Document is an uploaded file's metadata plus its storage pointer. An
// associated application or requirement must belong to the same student.
type Document struct {
	ID            int64        `json:"id" db:"id"`
	StudentID     int64        `json:"studentId" db:"student_id"`
	Filename      string       `json:"filename" db:"filename"`
	OriginalName  string       `json:"originalName" db:"original_name"`
	MimeType      string       `json:"mimeType" db:"mime_type"`
	Size          int64        `json:"size" db:"size"`
	Path          string       `json:"-" db:"path"`
	DocumentType  DocumentType `json:"documentType" db:"document_type"`
	ApplicationID *int64       `json:"applicationId,omitempty" db:"application_id"`
	RequirementID *int64       `json:"requirementId,omitempty" db:"requirement_id"`
	UploadedAt    time.Time    `json:"uploadedAt" db:"uploaded_at"`

	// Relations (populated when needed)
	Application *Application            `json:"application,omitempty"`
	Requirement *ApplicationRequirement `json:"requirement,omitempty"`
}
