package services

import (
	"context"

	"github.com/kzhao/applytrack/internal/app/auth"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/app/repositories"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
	"github.com/kzhao/applytrack/internal/pkg/helpers"
	"github.com/kzhao/applytrack/internal/pkg/logger"
)

// ApplicationService handles a student's application tracking. Ownership is
// enforced by student-scoped queries: every read and write carries the
// authenticated student's ID, so foreign applications read as not found.
type ApplicationService struct {
	appRepo repositories.IApplicationRepository
	uniRepo repositories.IUniversityRepository
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	appRepo repositories.IApplicationRepository,
	uniRepo repositories.IUniversityRepository,
) *ApplicationService {
	return &ApplicationService{
		appRepo: appRepo,
		uniRepo: uniRepo,
	}
}

// CreateApplication starts tracking a university application for the
// authenticated student.
func (s *ApplicationService) CreateApplication(ctx context.Context, principal *auth.Principal, req *dto.CreateApplicationRequest) (*models.Application, error) {
	studentID, ok := principal.StudentID()
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}

	appType := models.ApplicationType(req.ApplicationType)
	if !models.ValidApplicationType(appType) {
		return nil, apperrors.NewValidationError("Invalid application type")
	}

	deadline, err := helpers.ParseDate(req.Deadline)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid deadline date")
	}

	if _, err := s.uniRepo.GetByID(ctx, req.UniversityID); err != nil {
		return nil, err
	}

	app := &models.Application{
		StudentID:       studentID,
		UniversityID:    req.UniversityID,
		ApplicationType: appType,
		Status:          models.StatusNotStarted,
		Deadline:        deadline,
		Notes:           req.Notes,
	}

	id, err := s.appRepo.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("applicationId", id).
		Int64("studentId", studentID).
		Int64("universityId", req.UniversityID).
		Msg("Application created")

	return s.appRepo.GetByIDForStudent(ctx, id, studentID)
}

// ListApplications returns the authenticated student's applications, newest
// first, with universities, requirements and parent notes.
func (s *ApplicationService) ListApplications(ctx context.Context, principal *auth.Principal) ([]*models.Application, error) {
	studentID, ok := principal.StudentID()
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.appRepo.ListByStudent(ctx, studentID)
}

// GetApplication returns one of the student's applications with its full
// detail. An application owned by someone else reads as not found.
func (s *ApplicationService) GetApplication(ctx context.Context, principal *auth.Principal, id int64) (*models.Application, error) {
	studentID, ok := principal.StudentID()
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.appRepo.GetByIDForStudent(ctx, id, studentID)
}

// UpdateApplication applies the provided fields to one of the student's
// applications and returns the updated record.
func (s *ApplicationService) UpdateApplication(ctx context.Context, principal *auth.Principal, id int64, req *dto.UpdateApplicationRequest) (*models.Application, error) {
	studentID, ok := principal.StudentID()
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}

	app, err := s.appRepo.GetByIDForStudent(ctx, id, studentID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		status := models.ApplicationStatus(*req.Status)
		if !models.ValidApplicationStatus(status) {
			return nil, apperrors.NewValidationError("Invalid application status")
		}
		app.Status = status
	}
	if req.Deadline != "" {
		deadline, err := helpers.ParseDate(req.Deadline)
		if err != nil {
			return nil, apperrors.NewValidationError("Invalid deadline date")
		}
		app.Deadline = deadline
	}
	if req.SubmittedDate != "" {
		submitted, err := helpers.ParseDate(req.SubmittedDate)
		if err != nil {
			return nil, apperrors.NewValidationError("Invalid submitted date")
		}
		app.SubmittedDate = submitted
	}
	if req.DecisionDate != "" {
		decided, err := helpers.ParseDate(req.DecisionDate)
		if err != nil {
			return nil, apperrors.NewValidationError("Invalid decision date")
		}
		app.DecisionDate = decided
	}
	if req.DecisionType != nil {
		decision := models.DecisionType(*req.DecisionType)
		if !models.ValidDecisionType(decision) {
			return nil, apperrors.NewValidationError("Invalid decision type")
		}
		app.DecisionType = &decision
	}
	if req.Notes != nil {
		app.Notes = req.Notes
	}

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	return s.appRepo.GetByIDForStudent(ctx, id, studentID)
}

// DeleteApplication removes one of the student's applications together with
// its requirements and notes.
func (s *ApplicationService) DeleteApplication(ctx context.Context, principal *auth.Principal, id int64) error {
	studentID, ok := principal.StudentID()
	if !ok {
		return apperrors.ErrPermissionDenied
	}

	if err := s.appRepo.Delete(ctx, id, studentID); err != nil {
		return err
	}

	logger.Info().
		Int64("applicationId", id).
		Int64("studentId", studentID).
		Msg("Application deleted")

	return nil
}
