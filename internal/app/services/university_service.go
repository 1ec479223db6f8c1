package services

import (
	"context"

	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/app/repositories"
	"github.com/kzhao/applytrack/internal/pkg/helpers"
)

// UniversityService serves the read-only university catalog.
type UniversityService struct {
	uniRepo repositories.IUniversityRepository
}

// NewUniversityService creates a new UniversityService
func NewUniversityService(uniRepo repositories.IUniversityRepository) *UniversityService {
	return &UniversityService{
		uniRepo: uniRepo,
	}
}

// ListUniversities returns a filtered catalog page ordered by ranking.
func (s *UniversityService) ListUniversities(ctx context.Context, filter dto.UniversityFilterRequest, page, size int) (*dto.UniversityListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	unis, total, err := s.uniRepo.List(ctx, filter, int(offset), limit)
	if err != nil {
		return nil, err
	}

	return &dto.UniversityListResponse{
		Universities: unis,
		Pagination:   helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// GetUniversity returns one catalog entry.
func (s *UniversityService) GetUniversity(ctx context.Context, id int64) (*models.University, error) {
	return s.uniRepo.GetByID(ctx, id)
}
