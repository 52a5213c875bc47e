package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
	"github.com/oguzk/tutorlink/internal/pkg/logger"
)

// UserReader is the slice of the user repository authorization needs.
type UserReader interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// CourseMembershipReader answers course existence and membership questions.
type CourseMembershipReader interface {
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	IsEnrolled(ctx context.Context, courseID, userID int64) (bool, error)
	IsCourseTutor(ctx context.Context, courseID, userID int64) (bool, error)
}

// AuthorizationService handles authorization operations
type AuthorizationService struct {
	userRepo   UserReader
	courseRepo CourseMembershipReader
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo UserReader, courseRepo CourseMembershipReader) *AuthorizationService {
	return &AuthorizationService{
		userRepo:   userRepo,
		courseRepo: courseRepo,
	}
}

// GetUserInfo returns user information
func (s *AuthorizationService) GetUserInfo(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user by ID in GetUserInfo")
		return nil, fmt.Errorf("failed to get user information: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	return user, nil
}

// IsTutor checks if the user holds the tutor role
func (s *AuthorizationService) IsTutor(ctx context.Context, userID int64) (bool, error) {
	user, err := s.GetUserInfo(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.RoleType == models.RoleTutor, nil
}

// ValidateTutor validates that the target user is an approved tutor.
// The user must exist, hold the tutor role, and have passed admin review.
func (s *AuthorizationService) ValidateTutor(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.GetUserInfo(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.RoleType != models.RoleTutor {
		return nil, apperrors.ErrNotTutor
	}
	if !user.IsApproved {
		return nil, apperrors.ErrTutorNotApproved
	}

	return user, nil
}

// ValidateCourseExists returns the course or apperrors.ErrCourseNotFound.
func (s *AuthorizationService) ValidateCourseExists(ctx context.Context, courseID int64) (*models.Course, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error getting course by ID")
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	return course, nil
}

// ValidateEnrollment checks that the course exists and the student is
// enrolled in it. Course existence is checked first so a missing course
// reads as not-found rather than a permission problem.
func (s *AuthorizationService) ValidateEnrollment(ctx context.Context, courseID, studentID int64) (*models.Course, error) {
	course, err := s.ValidateCourseExists(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.courseRepo.IsEnrolled(ctx, courseID, studentID)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Int64("studentID", studentID).Msg("Error checking enrollment")
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return nil, apperrors.ErrNotEnrolled
	}

	return course, nil
}

// ValidateCourseTutor checks that the course exists and the user teaches it.
func (s *AuthorizationService) ValidateCourseTutor(ctx context.Context, courseID, userID int64) (*models.Course, error) {
	course, err := s.ValidateCourseExists(ctx, courseID)
	if err != nil {
		return nil, err
	}

	teaches, err := s.courseRepo.IsCourseTutor(ctx, courseID, userID)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Int64("userID", userID).Msg("Error checking course tutor membership")
		return nil, fmt.Errorf("failed to check course tutor: %w", err)
	}
	if !teaches {
		return nil, apperrors.ErrNotCourseTutor
	}

	return course, nil
}
