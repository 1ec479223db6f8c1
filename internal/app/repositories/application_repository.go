package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
	"github.com/kzhao/applytrack/internal/pkg/dberrors"
)

// IApplicationRepository defines the application persistence operations.
type IApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) (int64, error)
	GetByIDForStudent(ctx context.Context, id, studentID int64) (*models.Application, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Application, error)
	ListForParent(ctx context.Context, parentID int64, studentID *int64) ([]*models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, id, studentID int64) error
	GetOwnerStudentID(ctx context.Context, id int64) (int64, error)
}

// ApplicationRepository manages application persistence.
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
	}
}

const applicationColumns = `a.id, a.student_id, a.university_id, a.application_type, a.deadline,
	a.status, a.submitted_date, a.decision_date, a.decision_type, a.notes,
	a.created_at, a.updated_at`

const universityColumns = `un.id, un.name, un.country, un.state, un.city, un.us_news_ranking,
	un.acceptance_rate, un.application_system, un.tuition_in_state, un.tuition_out_state,
	un.application_fee, un.deadlines, un.created_at`

// Create inserts a new application. Returns ErrDuplicateApplication when the
// student already tracks the same university with the same application type.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO applications (student_id, university_id, application_type, deadline, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		app.StudentID, app.UniversityID, app.ApplicationType, app.Deadline,
		app.Status, app.Notes).Scan(&id)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrDuplicateApplication
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrUniversityNotFound
		}
		return 0, fmt.Errorf("error creating application: %w", err)
	}

	return id, nil
}

// GetByIDForStudent retrieves an application owned by the given student,
// including its university, requirements and parent notes.
func (r *ApplicationRepository) GetByIDForStudent(ctx context.Context, id, studentID int64) (*models.Application, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM applications a
		JOIN universities un ON un.id = a.university_id
		WHERE a.id = $1 AND a.student_id = $2`, applicationColumns, universityColumns)

	app, err := r.scanApplicationRow(r.db.QueryRow(ctx, query, id, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	if err := r.attachRequirements(ctx, []*models.Application{app}); err != nil {
		return nil, err
	}
	if err := r.attachParentNotes(ctx, []*models.Application{app}, nil); err != nil {
		return nil, err
	}

	return app, nil
}

// ListByStudent retrieves all applications of a student, newest first,
// including universities, requirements and parent notes.
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Application, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM applications a
		JOIN universities un ON un.id = a.university_id
		WHERE a.student_id = $1
		ORDER BY a.created_at DESC`, applicationColumns, universityColumns)

	apps, err := r.queryApplications(ctx, query, studentID)
	if err != nil {
		return nil, err
	}

	if err := r.attachRequirements(ctx, apps); err != nil {
		return nil, err
	}
	if err := r.attachParentNotes(ctx, apps, nil); err != nil {
		return nil, err
	}

	return apps, nil
}

// ListForParent retrieves the applications of students linked to a parent,
// optionally narrowed to a single linked student. Parent notes are restricted
// to the requesting parent's own notes.
func (r *ApplicationRepository) ListForParent(ctx context.Context, parentID int64, studentID *int64) ([]*models.Application, error) {
	builder := psql.Select(
		"a.id", "a.student_id", "a.university_id", "a.application_type", "a.deadline",
		"a.status", "a.submitted_date", "a.decision_date", "a.decision_type", "a.notes",
		"a.created_at", "a.updated_at",
		"un.id", "un.name", "un.country", "un.state", "un.city", "un.us_news_ranking",
		"un.acceptance_rate", "un.application_system", "un.tuition_in_state",
		"un.tuition_out_state", "un.application_fee", "un.deadlines", "un.created_at").
		From("applications a").
		Join("universities un ON un.id = a.university_id").
		Join("parent_students ps ON ps.student_id = a.student_id").
		Where(squirrel.Eq{"ps.parent_id": parentID}).
		OrderBy("a.created_at DESC")

	if studentID != nil {
		builder = builder.Where(squirrel.Eq{"a.student_id": *studentID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building parent applications query: %w", err)
	}

	apps, err := r.queryApplications(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	if err := r.attachStudents(ctx, apps); err != nil {
		return nil, err
	}
	if err := r.attachRequirements(ctx, apps); err != nil {
		return nil, err
	}
	if err := r.attachParentNotes(ctx, apps, &parentID); err != nil {
		return nil, err
	}

	return apps, nil
}

// Update writes the mutable fields of an application owned by app.StudentID.
func (r *ApplicationRepository) Update(ctx context.Context, app *models.Application) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE applications
		SET application_type = $1, deadline = $2, status = $3, submitted_date = $4,
		    decision_date = $5, decision_type = $6, notes = $7, updated_at = NOW()
		WHERE id = $8 AND student_id = $9`,
		app.ApplicationType, app.Deadline, app.Status, app.SubmittedDate,
		app.DecisionDate, app.DecisionType, app.Notes, app.ID, app.StudentID)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDuplicateApplication
		}
		return fmt.Errorf("error updating application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}

	return nil
}

// Delete removes an application owned by the given student.
func (r *ApplicationRepository) Delete(ctx context.Context, id, studentID int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM applications WHERE id = $1 AND student_id = $2`,
		id, studentID)

	if err != nil {
		return fmt.Errorf("error deleting application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}

	return nil
}

// GetOwnerStudentID resolves the owning student of an application.
func (r *ApplicationRepository) GetOwnerStudentID(ctx context.Context, id int64) (int64, error) {
	var studentID int64
	err := r.db.QueryRow(ctx, `
		SELECT student_id FROM applications WHERE id = $1`,
		id).Scan(&studentID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrApplicationNotFound
		}
		return 0, fmt.Errorf("error resolving application owner: %w", err)
	}

	return studentID, nil
}

func (r *ApplicationRepository) queryApplications(ctx context.Context, query string, args ...interface{}) ([]*models.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		app, err := r.scanApplicationRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}

	return apps, nil
}

func (r *ApplicationRepository) scanApplicationRow(row pgx.Row) (*models.Application, error) {
	app := &models.Application{University: &models.University{}}
	err := row.Scan(
		&app.ID, &app.StudentID, &app.UniversityID, &app.ApplicationType, &app.Deadline,
		&app.Status, &app.SubmittedDate, &app.DecisionDate, &app.DecisionType, &app.Notes,
		&app.CreatedAt, &app.UpdatedAt,
		&app.University.ID, &app.University.Name, &app.University.Country,
		&app.University.State, &app.University.City, &app.University.USNewsRanking,
		&app.University.AcceptanceRate, &app.University.ApplicationSystem,
		&app.University.TuitionInState, &app.University.TuitionOutState,
		&app.University.ApplicationFee, &app.University.Deadlines,
		&app.University.CreatedAt)
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *ApplicationRepository) attachStudents(ctx context.Context, apps []*models.Application) error {
	ids := applicationStudentIDs(apps)
	if len(ids) == 0 {
		return nil
	}

	query, args, err := psql.Select(
		"s.id", "s.user_id", "s.name", "s.graduation_year", "s.gpa",
		"s.sat_score", "s.act_score", "s.target_countries", "s.intended_majors").
		From("students s").
		Where(squirrel.Eq{"s.id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building students query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error loading students: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*models.Student)
	for rows.Next() {
		student := &models.Student{}
		err := rows.Scan(
			&student.ID, &student.UserID, &student.Name, &student.GraduationYear,
			&student.GPA, &student.SATScore, &student.ACTScore,
			&student.TargetCountries, &student.IntendedMajors)
		if err != nil {
			return fmt.Errorf("error scanning student: %w", err)
		}
		byID[student.ID] = student
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating students: %w", err)
	}

	for _, app := range apps {
		app.Student = byID[app.StudentID]
	}

	return nil
}

func (r *ApplicationRepository) attachRequirements(ctx context.Context, apps []*models.Application) error {
	ids := applicationIDs(apps)
	if len(ids) == 0 {
		return nil
	}

	query, args, err := psql.Select(
		"id", "application_id", "requirement_type", "status", "deadline",
		"notes", "created_at", "updated_at").
		From("application_requirements").
		Where(squirrel.Eq{"application_id": ids}).
		OrderBy("deadline ASC NULLS LAST", "id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building requirements query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error loading requirements: %w", err)
	}
	defer rows.Close()

	byApp := make(map[int64][]*models.ApplicationRequirement)
	for rows.Next() {
		req := &models.ApplicationRequirement{}
		err := rows.Scan(
			&req.ID, &req.ApplicationID, &req.RequirementType, &req.Status,
			&req.Deadline, &req.Notes, &req.CreatedAt, &req.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error scanning requirement: %w", err)
		}
		byApp[req.ApplicationID] = append(byApp[req.ApplicationID], req)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating requirements: %w", err)
	}

	for _, app := range apps {
		app.Requirements = byApp[app.ID]
	}

	return nil
}

// attachParentNotes loads the notes of the given applications. When parentID
// is set only that parent's notes are attached; students see every note.
func (r *ApplicationRepository) attachParentNotes(ctx context.Context, apps []*models.Application, parentID *int64) error {
	ids := applicationIDs(apps)
	if len(ids) == 0 {
		return nil
	}

	builder := psql.Select(
		"n.id", "n.parent_id", "n.application_id", "n.content", "n.created_at",
		"p.id", "p.user_id", "p.name").
		From("parent_notes n").
		Join("parents p ON p.id = n.parent_id").
		Where(squirrel.Eq{"n.application_id": ids}).
		OrderBy("n.created_at DESC")

	if parentID != nil {
		builder = builder.Where(squirrel.Eq{"n.parent_id": *parentID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("error building parent notes query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error loading parent notes: %w", err)
	}
	defer rows.Close()

	byApp := make(map[int64][]*models.ParentNote)
	for rows.Next() {
		note := &models.ParentNote{Parent: &models.Parent{}}
		err := rows.Scan(
			&note.ID, &note.ParentID, &note.ApplicationID, &note.Content, &note.CreatedAt,
			&note.Parent.ID, &note.Parent.UserID, &note.Parent.Name)
		if err != nil {
			return fmt.Errorf("error scanning parent note: %w", err)
		}
		byApp[note.ApplicationID] = append(byApp[note.ApplicationID], note)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating parent notes: %w", err)
	}

	for _, app := range apps {
		app.ParentNotes = byApp[app.ID]
	}

	return nil
}

func applicationIDs(apps []*models.Application) []int64 {
	ids := make([]int64, 0, len(apps))
	for _, app := range apps {
		ids = append(ids, app.ID)
	}
	return ids
}

func applicationStudentIDs(apps []*models.Application) []int64 {
	seen := make(map[int64]struct{}, len(apps))
	ids := make([]int64, 0, len(apps))
	for _, app := range apps {
		if _, ok := seen[app.StudentID]; ok {
			continue
		}
		seen[app.StudentID] = struct{}{}
		ids = append(ids, app.StudentID)
	}
	return ids
}
