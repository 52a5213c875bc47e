package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
	"github.com/oguzk/tutorlink/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Every controller
// funnels service errors through here so one sentinel always produces the
// same status code.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// 404 — the resource does not exist (or is invisible to the caller)
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrCategoryNotFound,
		apperrors.ErrSectionNotFound,
		apperrors.ErrClassNotFound,
		apperrors.ErrRatingNotFound,
		apperrors.ErrReportNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error()),
		})

	// 403 — caller is known but not allowed
	case apperrors.Is(err, apperrors.ErrPermissionDenied,
		apperrors.ErrNotEnrolled,
		apperrors.ErrNotCourseTutor,
		apperrors.ErrTutorNotApproved,
		apperrors.ErrAccountDisabled):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error()),
		})

	// 409 — the request lost a race or duplicates existing state
	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrClassAlreadyFinal,
		apperrors.ErrReportAlreadyClosed,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrCourseAlreadyExists,
		apperrors.ErrCategoryAlreadyExists):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeConflict, err.Error()),
		})

	// 401 — authentication problems
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
		})
	case apperrors.Is(err, apperrors.ErrTokenInvalid,
		apperrors.ErrTokenNotFound,
		apperrors.ErrTokenRevoked):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, err.Error()),
		})

	// 400 — the request itself is wrong
	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest,
		apperrors.ErrInvalidEmail,
		apperrors.ErrInvalidPassword,
		apperrors.ErrNotTutor,
		apperrors.ErrNotStudent,
		apperrors.ErrClassLinkRequired,
		apperrors.ErrClassTimeInPast,
		apperrors.ErrInvalidClassStatus,
		apperrors.ErrQuizQuestionInvalid,
		apperrors.ErrCourseHasNoContent,
		apperrors.ErrCourseNotPublished):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()),
		})

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}
