package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
	"github.com/oguzk/tutorlink/internal/pkg/helpers"
	"github.com/oguzk/tutorlink/internal/pkg/logger"
)

// UserService defines the interface for admin user management
type UserService interface {
	ListUsers(ctx context.Context, filter *dto.UserFilterRequest) (*dto.UserListResponse, error)
	GetUser(ctx context.Context, id int64) (*dto.UserResponse, error)
	SetTutorApproval(ctx context.Context, userID int64, approved bool) (*dto.UserResponse, error)
	SetUserActive(ctx context.Context, userID int64, active bool) (*dto.UserResponse, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo UserStore
}

// NewUserService creates a new UserService
func NewUserService(userRepo UserStore) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

// ListUsers returns one admin page of users, optionally filtered by role
func (s *userServiceImpl) ListUsers(ctx context.Context, filter *dto.UserFilterRequest) (*dto.UserListResponse, error) {
	var role *models.RoleType
	if filter.RoleType != nil {
		r := models.RoleType(*filter.RoleType)
		role = &r
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	users, total, err := s.userRepo.GetAllUsers(ctx, role, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, *dto.NewUserResponse(u))
	}

	return &dto.UserListResponse{
		Users:          responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, limit),
	}, nil
}

// GetUser returns one user
func (s *userServiceImpl) GetUser(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// SetTutorApproval flips a tutor's approval flag. Only tutor accounts
// carry the flag; pointing this at a student or admin is an error.
func (s *userServiceImpl) SetTutorApproval(ctx context.Context, userID int64, approved bool) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.RoleType != models.RoleTutor {
		return nil, apperrors.ErrNotTutor
	}

	if err := s.userRepo.SetApproval(ctx, userID, approved); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating approval: %w", err)
	}

	logger.Info().Int64("userID", userID).Bool("approved", approved).Msg("Tutor approval updated")

	return s.GetUser(ctx, userID)
}

// SetUserActive enables or disables an account. Disabled accounts cannot
// log in; their refresh tokens stop working on the next rotation.
func (s *userServiceImpl) SetUserActive(ctx context.Context, userID int64, active bool) (*dto.UserResponse, error) {
	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating active flag: %w", err)
	}

	logger.Info().Int64("userID", userID).Bool("active", active).Msg("User active flag updated")

	return s.GetUser(ctx, userID)
}
