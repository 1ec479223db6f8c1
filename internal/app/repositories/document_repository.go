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

// DocumentFilter narrows document listings.
type DocumentFilter struct {
	ApplicationID *int64
	RequirementID *int64
	DocumentType  *models.DocumentType
}

// IDocumentRepository defines the document persistence operations.
type IDocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) (int64, error)
	GetByIDForStudent(ctx context.Context, id, studentID int64) (*models.Document, error)
	ListByStudent(ctx context.Context, studentID int64, filter DocumentFilter) ([]*models.Document, error)
	Update(ctx context.Context, doc *models.Document) error
	Delete(ctx context.Context, id, studentID int64) error
	GetOwnerStudentID(ctx context.Context, id int64) (int64, error)
}

// DocumentRepository manages document metadata persistence.
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{
		db: db,
	}
}

const documentColumns = `id, student_id, filename, original_name, mime_type, size, path,
	document_type, application_id, requirement_id, uploaded_at`

// Create inserts a new document record.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO documents (student_id, filename, original_name, mime_type, size, path,
			document_type, application_id, requirement_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		doc.StudentID, doc.Filename, doc.OriginalName, doc.MimeType, doc.Size,
		doc.Path, doc.DocumentType, doc.ApplicationID, doc.RequirementID).Scan(&id)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrResourceNotFound
		}
		return 0, fmt.Errorf("error creating document: %w", err)
	}

	return id, nil
}

// GetByIDForStudent retrieves a document owned by the given student.
func (r *DocumentRepository) GetByIDForStudent(ctx context.Context, id, studentID int64) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM documents WHERE id = $1 AND student_id = $2`, documentColumns)

	doc := &models.Document{}
	err := r.db.QueryRow(ctx, query, id, studentID).Scan(
		&doc.ID, &doc.StudentID, &doc.Filename, &doc.OriginalName, &doc.MimeType,
		&doc.Size, &doc.Path, &doc.DocumentType, &doc.ApplicationID,
		&doc.RequirementID, &doc.UploadedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}

	return doc, nil
}

// ListByStudent retrieves a student's documents, newest first, applying the
// optional filter.
func (r *DocumentRepository) ListByStudent(ctx context.Context, studentID int64, filter DocumentFilter) ([]*models.Document, error) {
	builder := psql.Select(
		"id", "student_id", "filename", "original_name", "mime_type", "size", "path",
		"document_type", "application_id", "requirement_id", "uploaded_at").
		From("documents").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("uploaded_at DESC")

	if filter.ApplicationID != nil {
		builder = builder.Where(squirrel.Eq{"application_id": *filter.ApplicationID})
	}
	if filter.RequirementID != nil {
		builder = builder.Where(squirrel.Eq{"requirement_id": *filter.RequirementID})
	}
	if filter.DocumentType != nil {
		builder = builder.Where(squirrel.Eq{"document_type": *filter.DocumentType})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building documents query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		err := rows.Scan(
			&doc.ID, &doc.StudentID, &doc.Filename, &doc.OriginalName, &doc.MimeType,
			&doc.Size, &doc.Path, &doc.DocumentType, &doc.ApplicationID,
			&doc.RequirementID, &doc.UploadedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}

// Update writes the mutable metadata fields of a document owned by
// doc.StudentID.
func (r *DocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE documents
		SET document_type = $1, application_id = $2, requirement_id = $3
		WHERE id = $4 AND student_id = $5`,
		doc.DocumentType, doc.ApplicationID, doc.RequirementID, doc.ID, doc.StudentID)

	if err != nil {
		return fmt.Errorf("error updating document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}

	return nil
}

// Delete removes a document owned by the given student.
func (r *DocumentRepository) Delete(ctx context.Context, id, studentID int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM documents WHERE id = $1 AND student_id = $2`,
		id, studentID)

	if err != nil {
		return fmt.Errorf("error deleting document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}

	return nil
}

// GetOwnerStudentID resolves the owning student of a document.
func (r *DocumentRepository) GetOwnerStudentID(ctx context.Context, id int64) (int64, error) {
	var studentID int64
	err := r.db.QueryRow(ctx, `
		SELECT student_id FROM documents WHERE id = $1`,
		id).Scan(&studentID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrDocumentNotFound
		}
		return 0, fmt.Errorf("error resolving document owner: %w", err)
	}

	return studentID, nil
}
