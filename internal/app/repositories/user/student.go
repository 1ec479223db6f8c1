package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
)

// CreateStudentTx inserts a student profile within a registration transaction.
func (r *Repository) CreateStudentTx(ctx context.Context, tx pgx.Tx, student *models.Student) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO students (user_id, name, graduation_year)
		VALUES ($1, $2, $3)
		RETURNING id`,
		student.UserID, student.Name, student.GraduationYear).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// GetStudentByUserID retrieves a student profile for a user
func (r *Repository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	student := &models.Student{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, graduation_year, gpa, sat_score, act_score, target_countries, intended_majors
		FROM students
		WHERE user_id = $1`,
		userID).Scan(
		&student.ID, &student.UserID, &student.Name, &student.GraduationYear,
		&student.GPA, &student.SATScore, &student.ACTScore,
		&student.TargetCountries, &student.IntendedMajors)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetStudentByID retrieves a student profile by its ID
func (r *Repository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	student := &models.Student{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, graduation_year, gpa, sat_score, act_score, target_countries, intended_majors
		FROM students
		WHERE id = $1`,
		id).Scan(
		&student.ID, &student.UserID, &student.Name, &student.GraduationYear,
		&student.GPA, &student.SATScore, &student.ACTScore,
		&student.TargetCountries, &student.IntendedMajors)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// FindStudentIDByEmailTx resolves a student account by its user email within a
// transaction. Returns ErrStudentNotFound when the email does not belong to a
// student account.
func (r *Repository) FindStudentIDByEmailTx(ctx context.Context, tx pgx.Tx, email string) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		SELECT s.id
		FROM students s
		JOIN users u ON u.id = s.user_id
		WHERE u.email = $1`,
		email).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrStudentNotFound
		}
		return 0, fmt.Errorf("error resolving student by email: %w", err)
	}

	return id, nil
}

// FindStudentIDByEmail resolves a student account by its user email.
func (r *Repository) FindStudentIDByEmail(ctx context.Context, email string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		SELECT s.id
		FROM students s
		JOIN users u ON u.id = s.user_id
		WHERE u.email = $1`,
		email).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrStudentNotFound
		}
		return 0, fmt.Errorf("error resolving student by email: %w", err)
	}

	return id, nil
}

// UpdateStudentProfile updates the mutable profile fields of a student.
func (r *Repository) UpdateStudentProfile(ctx context.Context, student *models.Student) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE students
		SET name = $1, graduation_year = $2, gpa = $3, sat_score = $4,
		    act_score = $5, target_countries = $6, intended_majors = $7
		WHERE id = $8`,
		student.Name, student.GraduationYear, student.GPA, student.SATScore,
		student.ACTScore, student.TargetCountries, student.IntendedMajors,
		student.ID)

	if err != nil {
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
