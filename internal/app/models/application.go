package models

import "time"

// Application represents one student's intent to apply to one university
// under one admission plan. The (student, university, type) triple is
// unique; parents see applications only through the relationship graph.
type Application struct {
	ID              int64             `json:"id" db:"id"`
	StudentID       int64             `json:"studentId" db:"student_id"`
	UniversityID    int64             `json:"universityId" db:"university_id"`
	ApplicationType ApplicationType   `json:"applicationType" db:"application_type"`
	Status          ApplicationStatus `json:"status" db:"status"`
	Deadline        *time.Time        `json:"deadline,omitempty" db:"deadline"`
	SubmittedDate   *time.Time        `json:"submittedDate,omitempty" db:"submitted_date"`
	DecisionDate    *time.Time        `json:"decisionDate,omitempty" db:"decision_date"`
	DecisionType    *DecisionType     `json:"decisionType,omitempty" db:"decision_type"`
	Notes           *string           `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time         `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	University   *University               `json:"university,omitempty"`
	Student      *Student                  `json:"student,omitempty"`
	Requirements []*ApplicationRequirement `json:"requirements,omitempty"`
	ParentNotes  []*ParentNote             `json:"parentNotes,omitempty"`
}
