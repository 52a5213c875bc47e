package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/app/services"
	"github.com/oguzk/tutorlink/internal/middleware"
)

// ClassController handles the class request lifecycle
type ClassController struct {
	classService services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService services.ClassService) *ClassController {
	return &ClassController{
		classService: classService,
	}
}

// RequestClass handles a student requesting an individual class
// @Summary Request an individual class
// @Description Creates a pending class request addressed to one of the course's tutors. The request stays pending until the tutor accepts or rejects it.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassRequest true "Class request payload"
// @Success 201 {object} dto.APIResponse{data=dto.ClassResponse} "Request created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or time not in the future"
// @Failure 403 {object} dto.ErrorResponse "Student not enrolled in the course"
// @Failure 404 {object} dto.ErrorResponse "Course or tutor not found"
// @Router /classes/request [post]
func (c *ClassController) RequestClass(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.classService.RequestClass(ctx, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// RespondToRequest handles a tutor accepting or rejecting a pending request
// @Summary Respond to a class request
// @Description Accepts or rejects a pending request as the addressed tutor. Accepting requires a meeting link. A request that is already resolved stays unchanged and yields a conflict.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classId path int true "Class ID"
// @Param request body dto.RespondClassRequest true "Response payload"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse} "Request resolved"
// @Failure 400 {object} dto.ErrorResponse "Invalid status or missing meeting link"
// @Failure 403 {object} dto.ErrorResponse "Caller is not the addressed tutor"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 409 {object} dto.ErrorResponse "Request already resolved"
// @Router /classes/{classId}/respond [patch]
func (c *ClassController) RespondToRequest(ctx *gin.Context) {
	tutorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "classId")
	if !ok {
		return
	}

	var req dto.RespondClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.classService.RespondToRequest(ctx, tutorID, classID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetSchedule returns the caller's class calendar
// @Summary Get own schedule
// @Description Returns the caller's accepted individual classes plus the group classes of every course they are enrolled in or teach, ordered by time.
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse} "Schedule"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /classes/schedule [get]
func (c *ClassController) GetSchedule(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	response, err := c.classService.GetSchedule(ctx, userID, currentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// ListPendingRequests returns requests waiting on the calling tutor
// @Summary List pending requests
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse} "Pending requests"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /classes/requests/pending [get]
func (c *ClassController) ListPendingRequests(ctx *gin.Context) {
	tutorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	response, err := c.classService.ListPendingRequests(ctx, tutorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// ListMyRequests returns the calling student's requests in every state
// @Summary List own class requests
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse} "Requests"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /classes/requests [get]
func (c *ClassController) ListMyRequests(ctx *gin.Context) {
	studentID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	response, err := c.classService.ListStudentRequests(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetClass returns one class for a participant or admin
// @Summary Get a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param classId path int true "Class ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClassResponse} "Class"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a participant"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /classes/{classId} [get]
func (c *ClassController) GetClass(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	classID, ok := parseIDParam(ctx, "classId")
	if !ok {
		return
	}

	response, err := c.classService.GetClass(ctx, userID, currentRole(ctx), classID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// CreateGroupClass handles a tutor scheduling a group class on a course
// @Summary Create a group class
// @Description Schedules a group class visible to every student enrolled in the course. Group classes are accepted from the start and carry their meeting link immediately.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.CreateGroupClassRequest true "Group class payload"
// @Success 201 {object} dto.APIResponse{data=dto.ClassResponse} "Group class created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or time not in the future"
// @Failure 403 {object} dto.ErrorResponse "Caller does not teach the course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/group-classes [post]
func (c *ClassController) CreateGroupClass(ctx *gin.Context) {
	tutorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.CreateGroupClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.classService.CreateGroupClass(ctx, tutorID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// ListGroupClasses returns a course's scheduled group classes
// @Summary List a course's group classes
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse} "Group classes"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/group-classes [get]
func (c *ClassController) ListGroupClasses(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	response, err := c.classService.ListGroupClasses(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
