package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/app/services"
	"github.com/oguzk/tutorlink/internal/middleware"
)

// AdminController handles admin user management operations
type AdminController struct {
	userService services.UserService
}

// NewAdminController creates a new AdminController
func NewAdminController(userService services.UserService) *AdminController {
	return &AdminController{
		userService: userService,
	}
}

// ListUsers returns one page of users
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param roleType query string false "Filter by role (ADMIN, STUDENT, TUTOR)"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10)"
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Users"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	var filter dto.UserFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.userService.ListUsers(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetUser returns one user
// @Summary Get a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{userId} [get]
func (c *AdminController) GetUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	response, err := c.userService.GetUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// SetTutorApproval flips a tutor's approval flag
// @Summary Approve or revoke a tutor
// @Description Sets a tutor account's approval flag. Unapproved tutors cannot create courses or receive class requests.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param request body dto.SetApprovalRequest true "Approval payload"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Approval updated"
// @Failure 400 {object} dto.ErrorResponse "Target user is not a tutor"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{userId}/approval [patch]
func (c *AdminController) SetTutorApproval(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	var req dto.SetApprovalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.userService.SetTutorApproval(ctx, userID, req.Approved)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// SetUserActive enables or disables an account
// @Summary Enable or disable a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param request body dto.SetActiveRequest true "Active payload"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Active flag updated"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{userId}/active [patch]
func (c *AdminController) SetUserActive(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	var req dto.SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.userService.SetUserActive(ctx, userID, req.Active)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
