package dto

// DocumentFilterRequest narrows a student's document list. Filters only
// narrow; the list never widens past the requesting student's documents.
type DocumentFilterRequest struct {
	ApplicationID *int64  `form:"applicationId"`
	RequirementID *int64  `form:"requirementId"`
	DocumentType  *string `form:"documentType"`
}

// UploadDocumentRequest carries the optional metadata fields of a multipart
// upload. An absent DocumentType is inferred from the filename.
type UploadDocumentRequest struct {
	DocumentType  *string `form:"documentType"`
	ApplicationID *int64  `form:"applicationId"`
	RequirementID *int64  `form:"requirementId"`
}

// UpdateDocumentRequest re-types or re-associates an uploaded document.
type UpdateDocumentRequest struct {
	DocumentType  *string `json:"documentType,omitempty"`
	ApplicationID *int64  `json:"applicationId,omitempty"`
	RequirementID *int64  `json:"requirementId,omitempty"`
}
