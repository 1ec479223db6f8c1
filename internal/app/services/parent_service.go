package services

import (
	"context"
	"strings"

	"github.com/kzhao/applytrack/internal/app/auth"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/app/repositories"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
	"github.com/kzhao/applytrack/internal/pkg/logger"
)

// ParentService handles the parent side of the relationship graph: linking
// to students, viewing their applications and annotating them.
type ParentService struct {
	userRepo repositories.IUserRepository
	linkRepo repositories.IParentLinkRepository
	appRepo  repositories.IApplicationRepository
	noteRepo repositories.IParentNoteRepository
	guard    *auth.AuthorizationService
}

// NewParentService creates a new ParentService
func NewParentService(
	userRepo repositories.IUserRepository,
	linkRepo repositories.IParentLinkRepository,
	appRepo repositories.IApplicationRepository,
	noteRepo repositories.IParentNoteRepository,
	guard *auth.AuthorizationService,
) *ParentService {
	return &ParentService{
		userRepo: userRepo,
		linkRepo: linkRepo,
		appRepo:  appRepo,
		noteRepo: noteRepo,
		guard:    guard,
	}
}

// LinkStudent connects the authenticated parent to a student by email and
// returns the linked student with their applications. Unlike the silent skip
// during registration, an unresolvable email here is an error the caller
// asked about explicitly.
func (s *ParentService) LinkStudent(ctx context.Context, principal *auth.Principal, req *dto.LinkStudentRequest) (*models.Student, error) {
	parentID, ok := principal.ParentID()
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}

	email := strings.ToLower(strings.TrimSpace(req.StudentEmail))
	studentID, err := s.userRepo.FindStudentIDByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.linkRepo.CreateLink(ctx, parentID, studentID); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("parentId", parentID).
		Int64("studentId", studentID).
		Msg("Parent linked to student")

	student, err := s.userRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	apps, err := s.appRepo.ListForParent(ctx, parentID, &studentID)
	if err != nil {
		return nil, err
	}
	attachApplications([]*models.Student{student}, apps)

	return student, nil
}

// ListStudents returns the students linked to the authenticated parent,
// each with their applications.
func (s *ParentService) ListStudents(ctx context.Context, principal *auth.Principal) ([]*models.Student, error) {
	parentID, ok := principal.ParentID()
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}

	students, err := s.linkRepo.ListStudentsByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return students, nil
	}

	apps, err := s.appRepo.ListForParent(ctx, parentID, nil)
	if err != nil {
		return nil, err
	}
	attachApplications(students, apps)

	return students, nil
}

// attachApplications groups applications under their owning students. The
// per-application student relation is dropped since the nesting carries it.
func attachApplications(students []*models.Student, apps []*models.Application) {
	byStudent := make(map[int64][]*models.Application, len(students))
	for _, app := range apps {
		app.Student = nil
		byStudent[app.StudentID] = append(byStudent[app.StudentID], app)
	}
	for _, student := range students {
		student.Applications = byStudent[student.ID]
	}
}

// ListApplications returns the applications of the parent's linked students,
// optionally narrowed to one student. The linkage predicate always applies:
// a studentId outside the parent's links yields an empty list, never another
// student's data.
func (s *ParentService) ListApplications(ctx context.Context, principal *auth.Principal, filter *dto.ParentApplicationsFilter) ([]*models.Application, error) {
	parentID, ok := principal.ParentID()
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.appRepo.ListForParent(ctx, parentID, filter.StudentID)
}

// AddNote attaches a parent note to a linked student's application.
func (s *ParentService) AddNote(ctx context.Context, principal *auth.Principal, applicationID int64, req *dto.CreateNoteRequest) (*models.ParentNote, error) {
	parentID, ok := principal.ParentID()
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewValidationError("Note content cannot be empty")
	}

	ref := auth.EntityRef{Kind: auth.EntityApplication, ID: applicationID}
	if _, err := s.guard.Authorize(ctx, principal, auth.ActionAnnotate, ref); err != nil {
		return nil, err
	}

	note := &models.ParentNote{
		ParentID:      parentID,
		ApplicationID: applicationID,
		Content:       content,
	}

	id, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, err
	}

	return s.noteRepo.GetByID(ctx, id)
}
