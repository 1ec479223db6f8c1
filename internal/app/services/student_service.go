package services

import (
	"context"
	"strings"

	"github.com/kzhao/applytrack/internal/app/auth"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/app/repositories"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
)

// StudentService handles student profile operations.
type StudentService struct {
	userRepo repositories.IUserRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(userRepo repositories.IUserRepository) *StudentService {
	return &StudentService{
		userRepo: userRepo,
	}
}

// GetProfile returns the authenticated student's profile.
func (s *StudentService) GetProfile(ctx context.Context, principal *auth.Principal) (*models.Student, error) {
	if !principal.IsStudent() {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.userRepo.GetStudentByUserID(ctx, principal.UserID)
}

// UpdateProfile applies the provided fields to the student's profile and
// returns the updated profile.
func (s *StudentService) UpdateProfile(ctx context.Context, principal *auth.Principal, req *dto.UpdateProfileRequest) (*models.Student, error) {
	if !principal.IsStudent() {
		return nil, apperrors.ErrPermissionDenied
	}

	student, err := s.userRepo.GetStudentByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("Name cannot be empty")
		}
		student.Name = name
	}
	if req.GraduationYear != nil {
		student.GraduationYear = req.GraduationYear
	}
	if req.GPA != nil {
		if *req.GPA < 0 || *req.GPA > 5.0 {
			return nil, apperrors.NewValidationError("GPA must be between 0 and 5.0")
		}
		student.GPA = req.GPA
	}
	if req.SATScore != nil {
		if *req.SATScore < 400 || *req.SATScore > 1600 {
			return nil, apperrors.NewValidationError("SAT score must be between 400 and 1600")
		}
		student.SATScore = req.SATScore
	}
	if req.ACTScore != nil {
		if *req.ACTScore < 1 || *req.ACTScore > 36 {
			return nil, apperrors.NewValidationError("ACT score must be between 1 and 36")
		}
		student.ACTScore = req.ACTScore
	}
	if req.TargetCountries != nil {
		student.TargetCountries = req.TargetCountries
	}
	if req.IntendedMajors != nil {
		student.IntendedMajors = req.IntendedMajors
	}

	if err := s.userRepo.UpdateStudentProfile(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}
