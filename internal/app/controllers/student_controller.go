package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/app/services"
	"github.com/kzhao/applytrack/internal/middleware"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
)

// StudentController handles the student profile endpoints.
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// GetProfile handles GET /api/student/profile
func (c *StudentController) GetProfile(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	student, err := c.studentService.GetProfile(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// UpdateProfile handles PUT /api/student/profile
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.UpdateProfile(ctx.Request.Context(), principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}
