package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/app/services"
	"github.com/oguzk/tutorlink/internal/middleware"
)

// SectionController handles content section operations
type SectionController struct {
	sectionService services.SectionService
}

// NewSectionController creates a new SectionController
func NewSectionController(sectionService services.SectionService) *SectionController {
	return &SectionController{
		sectionService: sectionService,
	}
}

// CreateSection handles a tutor creating a video section with an optional quiz
// @Summary Create a section
// @Description Creates a video section with optional quiz questions. Each question must mark at least one option as correct.
// @Tags sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSectionRequest true "Section payload"
// @Success 201 {object} dto.APIResponse{data=dto.SectionResponse} "Section created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or quiz question without a correct option"
// @Failure 403 {object} dto.ErrorResponse "Tutor not approved"
// @Router /sections [post]
func (c *SectionController) CreateSection(ctx *gin.Context) {
	tutorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.sectionService.CreateSection(ctx, tutorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// GetSection returns one section with its quiz
// @Summary Get a section
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param sectionId path int true "Section ID"
// @Success 200 {object} dto.APIResponse{data=dto.SectionResponse} "Section"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /sections/{sectionId} [get]
func (c *SectionController) GetSection(ctx *gin.Context) {
	sectionID, ok := parseIDParam(ctx, "sectionId")
	if !ok {
		return
	}

	response, err := c.sectionService.GetSection(ctx, sectionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
