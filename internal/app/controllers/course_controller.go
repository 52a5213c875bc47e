package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/app/services"
	"github.com/oguzk/tutorlink/internal/middleware"
)

// CourseController handles catalog related operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// ListCourses returns a filtered catalog page
// @Summary List courses
// @Description Lists published courses with optional category, tag and text filters. Admins also see drafts.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param categoryId query int false "Filter by category ID"
// @Param tag query string false "Filter by tag"
// @Param search query string false "Search in name and description"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10)"
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	var filter dto.CourseFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.courseService.ListCourses(ctx, currentRole(ctx), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetCourse returns one course with its tutors and sections
// @Summary Get a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	response, err := c.courseService.GetCourse(ctx, userID, currentRole(ctx), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// CreateCourse handles a tutor creating a draft course
// @Summary Create a course
// @Description Creates a draft course owned by the calling tutor
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course payload"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Tutor not approved"
// @Failure 409 {object} dto.ErrorResponse "Course name already taken"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	tutorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.courseService.CreateCourse(ctx, tutorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// UpdateCourse handles an owning tutor updating a course
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course payload"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course updated"
// @Failure 403 {object} dto.ErrorResponse "Caller does not teach the course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	tutorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.courseService.UpdateCourse(ctx, tutorID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// PublishCourse moves a draft course into the public catalog
// @Summary Publish a course
// @Description Publishes a draft course. Courses without content sections cannot be published.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course published"
// @Failure 400 {object} dto.ErrorResponse "Course has no sections"
// @Failure 403 {object} dto.ErrorResponse "Caller does not teach the course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/publish [post]
func (c *CourseController) PublishCourse(ctx *gin.Context) {
	tutorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	response, err := c.courseService.PublishCourse(ctx, tutorID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// Enroll adds the calling student to a published course
// @Summary Enroll in a course
// @Description Enrolls the calling student. Enrolling in a course twice is a no-op.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Enrolled"
// @Failure 400 {object} dto.ErrorResponse "Course not published"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	if err := c.courseService.Enroll(ctx, studentID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Enrolled"}))
}

// AddTutor assigns another tutor to a course
// @Summary Add a co-tutor
// @Description Assigns another approved tutor to the course as one of its tutors
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.AddCourseTutorRequest true "Tutor payload"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Tutor assigned"
// @Failure 400 {object} dto.ErrorResponse "Target user is not a tutor"
// @Failure 403 {object} dto.ErrorResponse "Caller does not teach the course"
// @Failure 404 {object} dto.ErrorResponse "Course or tutor not found"
// @Router /courses/{courseId}/tutors [post]
func (c *CourseController) AddTutor(ctx *gin.Context) {
	tutorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.AddCourseTutorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.courseService.AddTutor(ctx, tutorID, courseID, req.TutorID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Tutor assigned"}))
}

// AttachSection attaches a section to a course
// @Summary Attach a section
// @Description Attaches one of the calling tutor's sections to the course at a position
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.AttachSectionRequest true "Section payload"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Section attached"
// @Failure 403 {object} dto.ErrorResponse "Caller does not teach the course or own the section"
// @Failure 404 {object} dto.ErrorResponse "Course or section not found"
// @Router /courses/{courseId}/sections [post]
func (c *CourseController) AttachSection(ctx *gin.Context) {
	tutorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.AttachSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.courseService.AttachSection(ctx, tutorID, courseID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Section attached"}))
}

// ListCategories returns all course categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CategoryResponse} "Categories"
// @Router /categories [get]
func (c *CourseController) ListCategories(ctx *gin.Context) {
	response, err := c.courseService.ListCategories(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// CreateCategory handles an admin creating a category
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCategoryRequest true "Category payload"
// @Success 201 {object} dto.APIResponse{data=dto.CategoryResponse} "Category created"
// @Failure 409 {object} dto.ErrorResponse "Category name already taken"
// @Router /categories [post]
func (c *CourseController) CreateCategory(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.courseService.CreateCategory(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}
