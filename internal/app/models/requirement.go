package models

import "time"

// ApplicationRequirement is a checklist item under an application. Its
// ownership is inherited from the application it belongs to.
type ApplicationRequirement struct {
	ID              int64             `json:"id" db:"id"`
	ApplicationID   int64             `json:"applicationId" db:"application_id"`
	RequirementType RequirementType   `json:"requirementType" db:"requirement_type"`
	Status          RequirementStatus `json:"status" db:"status"`
	Deadline        *time.Time        `json:"deadline,omitempty" db:"deadline"`
	Notes           *string           `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time         `json:"updatedAt" db:"updated_at"`
}
