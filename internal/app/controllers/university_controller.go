package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/app/services"
	"github.com/kzhao/applytrack/internal/middleware"
	"github.com/kzhao/applytrack/internal/pkg/helpers"
)

// UniversityController handles the university catalog endpoints.
type UniversityController struct {
	uniService *services.UniversityService
}

// NewUniversityController creates a new UniversityController
func NewUniversityController(uniService *services.UniversityService) *UniversityController {
	return &UniversityController{
		uniService: uniService,
	}
}

// ListUniversities handles GET /api/universities
func (c *UniversityController) ListUniversities(ctx *gin.Context) {
	var filter dto.UniversityFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.uniService.ListUniversities(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// GetUniversity handles GET /api/universities/:id
func (c *UniversityController) GetUniversity(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	uni, err := c.uniService.GetUniversity(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(uni))
}
