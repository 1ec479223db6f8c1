package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
)

// CreateParentTx inserts a parent profile within a registration transaction.
func (r *Repository) CreateParentTx(ctx context.Context, tx pgx.Tx, parent *models.Parent) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO parents (user_id, name)
		VALUES ($1, $2)
		RETURNING id`,
		parent.UserID, parent.Name).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating parent: %w", err)
	}

	return id, nil
}

// GetParentByUserID retrieves a parent profile for a user
func (r *Repository) GetParentByUserID(ctx context.Context, userID int64) (*models.Parent, error) {
	parent := &models.Parent{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name
		FROM parents
		WHERE user_id = $1`,
		userID).Scan(&parent.ID, &parent.UserID, &parent.Name)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParentNotFound
		}
		return nil, fmt.Errorf("error retrieving parent: %w", err)
	}

	return parent, nil
}
