package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/app/services"
	"github.com/kzhao/applytrack/internal/middleware"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
)

// DocumentController handles the student document endpoints.
type DocumentController struct {
	docService *services.DocumentService
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(docService *services.DocumentService) *DocumentController {
	return &DocumentController{
		docService: docService,
	}
}

// ListDocuments handles GET /api/student/documents
func (c *DocumentController) ListDocuments(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	var filter dto.DocumentFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	docs, err := c.docService.ListDocuments(ctx.Request.Context(), principal, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(docs))
}

// UploadDocument handles POST /api/student/documents
func (c *DocumentController) UploadDocument(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Missing file upload"))
		return
	}

	var req dto.UploadDocumentRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	doc, err := c.docService.UploadDocument(ctx.Request.Context(), principal, fileHeader, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(doc))
}

// GetDocument handles GET /api/student/documents/:id
func (c *DocumentController) GetDocument(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	doc, err := c.docService.GetDocument(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(doc))
}

// DownloadDocument handles GET /api/student/documents/:id/download
func (c *DocumentController) DownloadDocument(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	doc, data, err := c.docService.DownloadDocument(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+doc.OriginalName+`"`)
	ctx.Data(http.StatusOK, doc.MimeType, data)
}

// UpdateDocument handles PUT /api/student/documents/:id
func (c *DocumentController) UpdateDocument(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	doc, err := c.docService.UpdateDocument(ctx.Request.Context(), principal, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(doc))
}

// DeleteDocument handles DELETE /api/student/documents/:id
func (c *DocumentController) DeleteDocument(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.docService.DeleteDocument(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Document deleted"))
}
