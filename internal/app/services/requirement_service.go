package services

import (
	"context"

	"github.com/kzhao/applytrack/internal/app/auth"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/app/repositories"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
	"github.com/kzhao/applytrack/internal/pkg/helpers"
)

// RequirementService manages checklist items under applications. Ownership
// is one hop away, so every operation goes through the authorization guard.
type RequirementService struct {
	reqRepo repositories.IRequirementRepository
	guard   *auth.AuthorizationService
}

// NewRequirementService creates a new RequirementService
func NewRequirementService(reqRepo repositories.IRequirementRepository, guard *auth.AuthorizationService) *RequirementService {
	return &RequirementService{
		reqRepo: reqRepo,
		guard:   guard,
	}
}

// CreateRequirement adds a checklist item under one of the caller's
// applications.
func (s *RequirementService) CreateRequirement(ctx context.Context, principal *auth.Principal, applicationID int64, req *dto.CreateRequirementRequest) (*models.ApplicationRequirement, error) {
	if _, err := s.guard.Authorize(ctx, principal, auth.ActionWrite, auth.EntityRef{Kind: auth.EntityApplication, ID: applicationID}); err != nil {
		return nil, err
	}

	reqType := models.RequirementType(req.RequirementType)
	if !models.ValidRequirementType(reqType) {
		return nil, apperrors.NewValidationError("Invalid requirement type")
	}

	deadline, err := helpers.ParseDate(req.Deadline)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid deadline date")
	}

	requirement := &models.ApplicationRequirement{
		ApplicationID:   applicationID,
		RequirementType: reqType,
		Status:          models.RequirementNotStarted,
		Deadline:        deadline,
		Notes:           req.Notes,
	}

	id, err := s.reqRepo.Create(ctx, requirement)
	if err != nil {
		return nil, err
	}

	return s.reqRepo.GetByID(ctx, id)
}

// UpdateRequirement applies the provided fields to a checklist item the
// caller owns.
func (s *RequirementService) UpdateRequirement(ctx context.Context, principal *auth.Principal, id int64, req *dto.UpdateRequirementRequest) (*models.ApplicationRequirement, error) {
	if _, err := s.guard.Authorize(ctx, principal, auth.ActionWrite, auth.EntityRef{Kind: auth.EntityRequirement, ID: id}); err != nil {
		return nil, err
	}

	requirement, err := s.reqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		status := models.RequirementStatus(*req.Status)
		if !models.ValidRequirementStatus(status) {
			return nil, apperrors.NewValidationError("Invalid requirement status")
		}
		requirement.Status = status
	}
	if req.Deadline != "" {
		deadline, err := helpers.ParseDate(req.Deadline)
		if err != nil {
			return nil, apperrors.NewValidationError("Invalid deadline date")
		}
		requirement.Deadline = deadline
	}
	if req.Notes != nil {
		requirement.Notes = req.Notes
	}

	if err := s.reqRepo.Update(ctx, requirement); err != nil {
		return nil, err
	}

	return requirement, nil
}

// DeleteRequirement removes a checklist item the caller owns.
func (s *RequirementService) DeleteRequirement(ctx context.Context, principal *auth.Principal, id int64) error {
	if _, err := s.guard.Authorize(ctx, principal, auth.ActionWrite, auth.EntityRef{Kind: auth.EntityRequirement, ID: id}); err != nil {
		return err
	}
	return s.reqRepo.Delete(ctx, id)
}
