package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/middleware"
)

// parseIDParam parses a positive int64 path parameter. On failure it writes
// a 400 response and returns false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a valid positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// currentUserID reads the authenticated user ID set by the JWT middleware.
// On failure it writes a 401 response and returns false.
func currentUserID(ctx *gin.Context) (int64, bool) {
	value, exists := ctx.Get(middleware.ContextUserID)
	if !exists {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "User not authenticated")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}

	userID, ok := value.(int64)
	if !ok || userID <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		errorDetail = errorDetail.WithDetails("Invalid user ID format")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return 0, false
	}

	return userID, true
}

// currentRole reads the authenticated role set by the JWT middleware
func currentRole(ctx *gin.Context) models.RoleType {
	value, exists := ctx.Get(middleware.ContextRoleType)
	if !exists {
		return ""
	}
	role, _ := value.(string)
	return models.RoleType(role)
}
