package auth

import (
	"github.com/kzhao/applytrack/internal/app/models"
)

// Principal is the fully resolved caller identity for one request: the
// account plus its role profile, and for parents the set of linked students.
type Principal struct {
	UserID int64
	Email  string
	Role   models.RoleType

	// Student is set when Role is RoleStudent.
	Student *models.Student
	// Parent and LinkedStudentIDs are set when Role is RoleParent.
	Parent           *models.Parent
	LinkedStudentIDs []int64
}

// IsStudent reports whether the principal is a student account.
func (p *Principal) IsStudent() bool {
	return p.Role == models.RoleStudent && p.Student != nil
}

// IsParent reports whether the principal is a parent account.
func (p *Principal) IsParent() bool {
	return p.Role == models.RoleParent && p.Parent != nil
}

// StudentID returns the student profile ID when the principal is a student.
func (p *Principal) StudentID() (int64, bool) {
	if !p.IsStudent() {
		return 0, false
	}
	return p.Student.ID, true
}

// ParentID returns the parent profile ID when the principal is a parent.
func (p *Principal) ParentID() (int64, bool) {
	if !p.IsParent() {
		return 0, false
	}
	return p.Parent.ID, true
}

// IsLinkedTo reports whether a parent principal is linked to the given
// student. Always false for non-parent principals.
func (p *Principal) IsLinkedTo(studentID int64) bool {
	if !p.IsParent() {
		return false
	}
	for _, id := range p.LinkedStudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}
