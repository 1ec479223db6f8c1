package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
	"github.com/kzhao/applytrack/internal/pkg/dberrors"
)

// IParentNoteRepository defines the parent note persistence operations.
type IParentNoteRepository interface {
	Create(ctx context.Context, note *models.ParentNote) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ParentNote, error)
}

// ParentNoteRepository manages parent note persistence.
type ParentNoteRepository struct {
	db *pgxpool.Pool
}

// NewParentNoteRepository creates a new ParentNoteRepository
func NewParentNoteRepository(db *pgxpool.Pool) *ParentNoteRepository {
	return &ParentNoteRepository{
		db: db,
	}
}

// Create inserts a new parent note on an application.
func (r *ParentNoteRepository) Create(ctx context.Context, note *models.ParentNote) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO parent_notes (parent_id, application_id, content)
		VALUES ($1, $2, $3)
		RETURNING id`,
		note.ParentID, note.ApplicationID, note.Content).Scan(&id)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrApplicationNotFound
		}
		return 0, fmt.Errorf("error creating parent note: %w", err)
	}

	return id, nil
}

// GetByID retrieves a parent note with its author.
func (r *ParentNoteRepository) GetByID(ctx context.Context, id int64) (*models.ParentNote, error) {
	note := &models.ParentNote{Parent: &models.Parent{}}
	err := r.db.QueryRow(ctx, `
		SELECT n.id, n.parent_id, n.application_id, n.content, n.created_at,
		       p.id, p.user_id, p.name
		FROM parent_notes n
		JOIN parents p ON p.id = n.parent_id
		WHERE n.id = $1`,
		id).Scan(
		&note.ID, &note.ParentID, &note.ApplicationID, &note.Content, &note.CreatedAt,
		&note.Parent.ID, &note.Parent.UserID, &note.Parent.Name)

	if err != nil {
		return nil, fmt.Errorf("error retrieving parent note: %w", err)
	}

	return note, nil
}
