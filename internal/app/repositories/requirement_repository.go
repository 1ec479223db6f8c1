package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
	"github.com/kzhao/applytrack/internal/pkg/dberrors"
)

// IRequirementRepository defines the application requirement persistence operations.
type IRequirementRepository interface {
	Create(ctx context.Context, req *models.ApplicationRequirement) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ApplicationRequirement, error)
	Update(ctx context.Context, req *models.ApplicationRequirement) error
	Delete(ctx context.Context, id int64) error
	GetOwnerStudentID(ctx context.Context, id int64) (int64, error)
}

// RequirementRepository manages application requirement persistence.
type RequirementRepository struct {
	db *pgxpool.Pool
}

// NewRequirementRepository creates a new RequirementRepository
func NewRequirementRepository(db *pgxpool.Pool) *RequirementRepository {
	return &RequirementRepository{
		db: db,
	}
}

// Create inserts a new requirement for an application.
func (r *RequirementRepository) Create(ctx context.Context, req *models.ApplicationRequirement) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO application_requirements (application_id, requirement_type, status, deadline, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		req.ApplicationID, req.RequirementType, req.Status, req.Deadline,
		req.Notes).Scan(&id)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrApplicationNotFound
		}
		return 0, fmt.Errorf("error creating requirement: %w", err)
	}

	return id, nil
}

// GetByID retrieves a requirement by ID
func (r *RequirementRepository) GetByID(ctx context.Context, id int64) (*models.ApplicationRequirement, error) {
	req := &models.ApplicationRequirement{}
	err := r.db.QueryRow(ctx, `
		SELECT id, application_id, requirement_type, status, deadline, notes, created_at, updated_at
		FROM application_requirements
		WHERE id = $1`,
		id).Scan(
		&req.ID, &req.ApplicationID, &req.RequirementType, &req.Status,
		&req.Deadline, &req.Notes, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequirementNotFound
		}
		return nil, fmt.Errorf("error retrieving requirement: %w", err)
	}

	return req, nil
}

// Update writes the mutable fields of a requirement.
func (r *RequirementRepository) Update(ctx context.Context, req *models.ApplicationRequirement) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE application_requirements
		SET requirement_type = $1, status = $2, deadline = $3, notes = $4,
		    updated_at = NOW()
		WHERE id = $5`,
		req.RequirementType, req.Status, req.Deadline, req.Notes, req.ID)

	if err != nil {
		return fmt.Errorf("error updating requirement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRequirementNotFound
	}

	return nil
}

// Delete removes a requirement.
func (r *RequirementRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM application_requirements WHERE id = $1`,
		id)

	if err != nil {
		return fmt.Errorf("error deleting requirement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRequirementNotFound
	}

	return nil
}

// GetOwnerStudentID resolves the student owning the application a requirement
// belongs to.
func (r *RequirementRepository) GetOwnerStudentID(ctx context.Context, id int64) (int64, error) {
	var studentID int64
	err := r.db.QueryRow(ctx, `
		SELECT a.student_id
		FROM application_requirements req
		JOIN applications a ON a.id = req.application_id
		WHERE req.id = $1`,
		id).Scan(&studentID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrRequirementNotFound
		}
		return 0, fmt.Errorf("error resolving requirement owner: %w", err)
	}

	return studentID, nil
}
