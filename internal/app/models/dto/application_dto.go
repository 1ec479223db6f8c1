package dto

// CreateApplicationRequest represents the payload for creating an application.
type CreateApplicationRequest struct {
	UniversityID    int64   `json:"universityId" binding:"required"`
	ApplicationType string  `json:"applicationType" binding:"required"`
	Deadline        string  `json:"deadline,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// UpdateApplicationRequest represents the payload for updating an
// application. Absent fields are left untouched.
type UpdateApplicationRequest struct {
	Status        *string `json:"status,omitempty"`
	Deadline      string  `json:"deadline,omitempty"`
	SubmittedDate string  `json:"submittedDate,omitempty"`
	DecisionDate  string  `json:"decisionDate,omitempty"`
	DecisionType  *string `json:"decisionType,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// CreateRequirementRequest represents the payload for adding a checklist
// item under an application.
type CreateRequirementRequest struct {
	RequirementType string  `json:"requirementType" binding:"required"`
	Deadline        string  `json:"deadline,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// UpdateRequirementRequest represents the payload for updating a checklist item.
type UpdateRequirementRequest struct {
	Status   *string `json:"status,omitempty"`
	Deadline string  `json:"deadline,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}
