package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/app/services"
	"github.com/oguzk/tutorlink/internal/middleware"
	"github.com/oguzk/tutorlink/internal/pkg/helpers"
)

// RatingController handles course rating operations
type RatingController struct {
	ratingService services.RatingService
}

// NewRatingController creates a new RatingController
func NewRatingController(ratingService services.RatingService) *RatingController {
	return &RatingController{
		ratingService: ratingService,
	}
}

// RateCourse records the calling student's rating for a course
// @Summary Rate a course
// @Description Creates or replaces the calling student's rating. A student keeps at most one rating per course.
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.UpsertRatingRequest true "Rating payload"
// @Success 200 {object} dto.APIResponse{data=dto.RatingResponse} "Rating stored"
// @Failure 403 {object} dto.ErrorResponse "Student not enrolled in the course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/ratings [put]
func (c *RatingController) RateCourse(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.UpsertRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.ratingService.RateCourse(ctx, studentID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// ListCourseRatings returns one page of a course's ratings
// @Summary List a course's ratings
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10)"
// @Success 200 {object} dto.APIResponse{data=dto.RatingListResponse} "Ratings"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/ratings [get]
func (c *RatingController) ListCourseRatings(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	response, err := c.ratingService.ListCourseRatings(ctx, courseID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
