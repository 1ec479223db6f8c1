package models

import "time"

// ParentNote is a comment a parent leaves on an application. The authoring
// parent must be linked to the application's owning student.
type ParentNote struct {
	ID            int64     `json:"id" db:"id"`
	ParentID      int64     `json:"parentId" db:"parent_id"`
	ApplicationID int64     `json:"applicationId" db:"application_id"`
	Content       string    `json:"content" db:"content"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Parent *Parent `json:"parent,omitempty"`
}
