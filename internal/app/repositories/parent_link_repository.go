package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
	"github.com/kzhao/applytrack/internal/pkg/dberrors"
)

// IParentLinkRepository defines the parent-student relationship operations.
type IParentLinkRepository interface {
	CreateLink(ctx context.Context, parentID, studentID int64) error
	CreateLinkTx(ctx context.Context, tx pgx.Tx, parentID, studentID int64) error
	IsLinked(ctx context.Context, parentID, studentID int64) (bool, error)
	ListStudentsByParent(ctx context.Context, parentID int64) ([]*models.Student, error)
	ListStudentIDsByParent(ctx context.Context, parentID int64) ([]int64, error)
}

// ParentLinkRepository manages the parent_students relationship table.
type ParentLinkRepository struct {
	db *pgxpool.Pool
}

// NewParentLinkRepository creates a new ParentLinkRepository
func NewParentLinkRepository(db *pgxpool.Pool) *ParentLinkRepository {
	return &ParentLinkRepository{
		db: db,
	}
}

// CreateLink creates a parent-student link. Returns ErrAlreadyLinked when the
// pair is already connected.
func (r *ParentLinkRepository) CreateLink(ctx context.Context, parentID, studentID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO parent_students (parent_id, student_id)
		VALUES ($1, $2)`,
		parentID, studentID)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyLinked
		}
		return fmt.Errorf("error creating parent-student link: %w", err)
	}

	return nil
}

// CreateLinkTx creates a parent-student link within a registration transaction.
func (r *ParentLinkRepository) CreateLinkTx(ctx context.Context, tx pgx.Tx, parentID, studentID int64) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO parent_students (parent_id, student_id)
		VALUES ($1, $2)`,
		parentID, studentID)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyLinked
		}
		return fmt.Errorf("error creating parent-student link: %w", err)
	}

	return nil
}

// IsLinked reports whether a parent is linked to a student.
func (r *ParentLinkRepository) IsLinked(ctx context.Context, parentID, studentID int64) (bool, error) {
	var linked bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM parent_students
			WHERE parent_id = $1 AND student_id = $2)`,
		parentID, studentID).Scan(&linked)

	if err != nil {
		return false, fmt.Errorf("error checking parent-student link: %w", err)
	}

	return linked, nil
}

// ListStudentsByParent retrieves the student profiles linked to a parent,
// including the account email of each student.
func (r *ParentLinkRepository) ListStudentsByParent(ctx context.Context, parentID int64) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.user_id, s.name, s.graduation_year, s.gpa, s.sat_score,
		       s.act_score, s.target_countries, s.intended_majors,
		       u.id, u.email, u.role_type
		FROM parent_students ps
		JOIN students s ON s.id = ps.student_id
		JOIN users u ON u.id = s.user_id
		WHERE ps.parent_id = $1
		ORDER BY s.name ASC`,
		parentID)
	if err != nil {
		return nil, fmt.Errorf("error listing linked students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{User: &models.User{}}
		err := rows.Scan(
			&student.ID, &student.UserID, &student.Name, &student.GraduationYear,
			&student.GPA, &student.SATScore, &student.ACTScore,
			&student.TargetCountries, &student.IntendedMajors,
			&student.User.ID, &student.User.Email, &student.User.RoleType)
		if err != nil {
			return nil, fmt.Errorf("error scanning linked student: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating linked students: %w", err)
	}

	return students, nil
}

// ListStudentIDsByParent retrieves the IDs of students linked to a parent.
func (r *ParentLinkRepository) ListStudentIDsByParent(ctx context.Context, parentID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT student_id FROM parent_students WHERE parent_id = $1`,
		parentID)
	if err != nil {
		return nil, fmt.Errorf("error listing linked student ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning linked student id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating linked student ids: %w", err)
	}

	return ids, nil
}
