package dto

// LinkStudentRequest links the authenticated parent to a student by email.
type LinkStudentRequest struct {
	StudentEmail string `json:"studentEmail" binding:"required,email"`
}

// CreateNoteRequest is the payload for a parent note on an application.
type CreateNoteRequest struct {
	Content string `json:"content" binding:"required"`
}

// ParentApplicationsFilter optionally narrows a parent's application list
// to one linked student.
type ParentApplicationsFilter struct {
	StudentID *int64 `form:"studentId"`
}
