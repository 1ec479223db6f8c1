package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/kzhao/applytrack/internal/app/auth"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/app/repositories"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
	"github.com/kzhao/applytrack/internal/pkg/filestorage"
	"github.com/kzhao/applytrack/internal/pkg/logger"
)

// MaxDocumentSize is the upload size cap in bytes.
const MaxDocumentSize = 10 << 20

var allowedDocumentMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
	"image/jpeg": true,
	"image/png":  true,
}

// DocumentService manages student document uploads. Files live under a
// per-student directory; metadata lives in the documents table.
type DocumentService struct {
	docRepo repositories.IDocumentRepository
	storage filestorage.FileStorage
	guard   *auth.AuthorizationService
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(docRepo repositories.IDocumentRepository, storage filestorage.FileStorage, guard *auth.AuthorizationService) *DocumentService {
	return &DocumentService{
		docRepo: docRepo,
		storage: storage,
		guard:   guard,
	}
}

// UploadDocument stores an uploaded file and its metadata for the
// authenticated student. Associated applications or requirements must belong
// to the same student.
func (s *DocumentService) UploadDocument(ctx context.Context, principal *auth.Principal, fileHeader *multipart.FileHeader, req *dto.UploadDocumentRequest) (*models.Document, error) {
	studentID, ok := principal.StudentID()
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}

	if fileHeader.Size > MaxDocumentSize {
		return nil, apperrors.ErrFileTooLarge
	}
	mimeType := fileHeader.Header.Get("Content-Type")
	if !allowedDocumentMimeTypes[mimeType] {
		return nil, apperrors.ErrFileTypeNotAllowed
	}

	if req.ApplicationID != nil {
		ref := auth.EntityRef{Kind: auth.EntityApplication, ID: *req.ApplicationID}
		if _, err := s.guard.Authorize(ctx, principal, auth.ActionWrite, ref); err != nil {
			return nil, err
		}
	}
	if req.RequirementID != nil {
		ref := auth.EntityRef{Kind: auth.EntityRequirement, ID: *req.RequirementID}
		if _, err := s.guard.Authorize(ctx, principal, auth.ActionWrite, ref); err != nil {
			return nil, err
		}
	}

	docType := models.DocOther
	if req.DocumentType != nil {
		docType = models.DocumentType(*req.DocumentType)
		if !models.ValidDocumentType(docType) {
			return nil, apperrors.NewValidationError("Invalid document type")
		}
	} else {
		docType = InferDocumentType(fileHeader.Filename)
	}

	stored, err := s.storage.SaveFile(fileHeader, fmt.Sprintf("student_%d", studentID))
	if err != nil {
		return nil, err
	}

	doc := &models.Document{
		StudentID:     studentID,
		Filename:      stored.Filename,
		OriginalName:  stored.OriginalName,
		MimeType:      stored.MimeType,
		Size:          stored.Size,
		Path:          stored.Path,
		DocumentType:  docType,
		ApplicationID: req.ApplicationID,
		RequirementID: req.RequirementID,
	}

	id, err := s.docRepo.Create(ctx, doc)
	if err != nil {
		if delErr := s.storage.DeleteFile(stored.Path); delErr != nil {
			logger.Warn().Err(delErr).Str("path", stored.Path).Msg("Failed to clean up orphaned upload")
		}
		return nil, err
	}

	return s.docRepo.GetByIDForStudent(ctx, id, studentID)
}

// ListDocuments returns the student's documents matching the filter.
func (s *DocumentService) ListDocuments(ctx context.Context, principal *auth.Principal, filter *dto.DocumentFilterRequest) ([]*models.Document, error) {
	studentID, ok := principal.StudentID()
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}

	repoFilter := repositories.DocumentFilter{
		ApplicationID: filter.ApplicationID,
		RequirementID: filter.RequirementID,
	}
	if filter.DocumentType != nil {
		docType := models.DocumentType(*filter.DocumentType)
		if !models.ValidDocumentType(docType) {
			return nil, apperrors.NewValidationError("Invalid document type")
		}
		repoFilter.DocumentType = &docType
	}

	return s.docRepo.ListByStudent(ctx, studentID, repoFilter)
}

// GetDocument returns one of the student's documents.
func (s *DocumentService) GetDocument(ctx context.Context, principal *auth.Principal, id int64) (*models.Document, error) {
	studentID, ok := principal.StudentID()
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.docRepo.GetByIDForStudent(ctx, id, studentID)
}

// DownloadDocument returns a document's metadata together with its bytes.
func (s *DocumentService) DownloadDocument(ctx context.Context, principal *auth.Principal, id int64) (*models.Document, []byte, error) {
	doc, err := s.GetDocument(ctx, principal, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.storage.ReadFile(doc.Path)
	if err != nil {
		return nil, nil, err
	}

	return doc, data, nil
}

// UpdateDocument re-types or re-associates one of the student's documents.
func (s *DocumentService) UpdateDocument(ctx context.Context, principal *auth.Principal, id int64, req *dto.UpdateDocumentRequest) (*models.Document, error) {
	studentID, ok := principal.StudentID()
	if !ok {
		return nil, apperrors.ErrPermissionDenied
	}

	doc, err := s.docRepo.GetByIDForStudent(ctx, id, studentID)
	if err != nil {
		return nil, err
	}

	if req.DocumentType != nil {
		docType := models.DocumentType(*req.DocumentType)
		if !models.ValidDocumentType(docType) {
			return nil, apperrors.NewValidationError("Invalid document type")
		}
		doc.DocumentType = docType
	}
	if req.ApplicationID != nil {
		ref := auth.EntityRef{Kind: auth.EntityApplication, ID: *req.ApplicationID}
		if _, err := s.guard.Authorize(ctx, principal, auth.ActionWrite, ref); err != nil {
			return nil, err
		}
		doc.ApplicationID = req.ApplicationID
	}
	if req.RequirementID != nil {
		ref := auth.EntityRef{Kind: auth.EntityRequirement, ID: *req.RequirementID}
		if _, err := s.guard.Authorize(ctx, principal, auth.ActionWrite, ref); err != nil {
			return nil, err
		}
		doc.RequirementID = req.RequirementID
	}

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// DeleteDocument removes one of the student's documents. The metadata row is
// authoritative; a failed byte deletion is logged, not surfaced.
func (s *DocumentService) DeleteDocument(ctx context.Context, principal *auth.Principal, id int64) error {
	studentID, ok := principal.StudentID()
	if !ok {
		return apperrors.ErrPermissionDenied
	}

	doc, err := s.docRepo.GetByIDForStudent(ctx, id, studentID)
	if err != nil {
		return err
	}

	if err := s.docRepo.Delete(ctx, id, studentID); err != nil {
		return err
	}

	if err := s.storage.DeleteFile(doc.Path); err != nil {
		logger.Warn().Err(err).Str("path", doc.Path).Msg("Failed to delete document file")
	}

	return nil
}

// InferDocumentType guesses a document classification from its filename.
func InferDocumentType(filename string) models.DocumentType {
	name := strings.ToLower(filename)

	switch {
	case strings.Contains(name, "transcript"):
		return models.DocTranscript
	case strings.Contains(name, "personal") && strings.Contains(name, "statement"):
		return models.DocPersonalStatement
	case strings.Contains(name, "essay"):
		return models.DocEssay
	case strings.Contains(name, "recommendation"), strings.Contains(name, "reference"):
		return models.DocRecommendation
	case strings.Contains(name, "sat"), strings.Contains(name, "act"), strings.Contains(name, "score"):
		return models.DocTestScores
	case strings.Contains(name, "resume"), strings.Contains(name, "cv"):
		return models.DocResume
	case strings.Contains(name, "portfolio"):
		return models.DocPortfolio
	case strings.Contains(name, "financial"), strings.Contains(name, "fafsa"):
		return models.DocFinancialAid
	default:
		return models.DocOther
	}
}
