package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/app/services"
	"github.com/kzhao/applytrack/internal/middleware"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
)

// ParentController handles the parent endpoints.
type ParentController struct {
	parentService *services.ParentService
}

// NewParentController creates a new ParentController
func NewParentController(parentService *services.ParentService) *ParentController {
	return &ParentController{
		parentService: parentService,
	}
}

// LinkStudent handles POST /api/parent/link-student
func (c *ParentController) LinkStudent(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.LinkStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.parentService.LinkStudent(ctx.Request.Context(), principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(student))
}

// ListStudents handles GET /api/parent/students
func (c *ParentController) ListStudents(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	students, err := c.parentService.ListStudents(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students))
}

// ListApplications handles GET /api/parent/applications
func (c *ParentController) ListApplications(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	var filter dto.ParentApplicationsFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	apps, err := c.parentService.ListApplications(ctx.Request.Context(), principal, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(apps))
}

// AddNote handles POST /api/parent/applications/:id/notes
func (c *ParentController) AddNote(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	applicationID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	note, err := c.parentService.AddNote(ctx.Request.Context(), principal, applicationID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(note))
}
