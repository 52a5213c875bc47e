package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
	"github.com/oguzk/tutorlink/internal/pkg/auth"
	"github.com/oguzk/tutorlink/internal/pkg/logger"
	"github.com/oguzk/tutorlink/internal/pkg/validation"
)

// AuthService handles authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   UserStore
	tokenRepo  TokenStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo UserStore, tokenRepo TokenStore, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
	}
}

// validatePassword checks if password meets requirements
func (s *authServiceImpl) validatePassword(password string) error {
	if len(password) < validation.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters long", apperrors.ErrInvalidPassword, validation.PasswordMinLength)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrInvalidPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", apperrors.ErrInvalidPassword)
	}

	return nil
}

// Register creates a student or tutor account and logs it in.
// Tutor accounts start unapproved and stay invisible to course assignment
// until an admin reviews them.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.IsValidEmail(email) {
		return nil, apperrors.ErrInvalidEmail
	}
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	role := models.RoleType(req.RoleType)
	if role != models.RoleStudent && role != models.RoleTutor {
		return nil, apperrors.NewBadRequestError("roleType must be STUDENT or TUTOR")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:      email,
		Password:   hashedPassword,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		RoleType:   role,
		IsActive:   true,
		IsApproved: role == models.RoleStudent,
	}
	if req.Bio != "" {
		bio := req.Bio
		user.Bio = &bio
	}
	if req.ResumeURL != "" {
		resumeURL := req.ResumeURL
		user.ResumeURL = &resumeURL
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("user creation error: %w", err)
	}
	user.ID = userID

	logger.Info().Int64("userID", userID).Str("role", string(role)).Msg("User registered")

	return s.generateTokenResponse(ctx, user)
}

// Login authenticates an account. The role is part of the credentials
// because one email may hold a student and a tutor account side by side.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetUserByEmailAndRole(ctx, email, models.RoleType(req.RoleType))
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Could not update last login time")
	}

	return s.generateTokenResponse(ctx, user)
}

// RefreshToken rotates a refresh token: the old token is revoked and a
// fresh pair is issued, so a stolen token can be replayed at most once.
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}
	// tokens are stored as UUIDs; reject malformed input before hitting the database
	if _, err := uuid.Parse(refreshToken); err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	record, err := s.tokenRepo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("token validation error: %w", err)
	}

	if record.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if record.ExpiresAt.Before(time.Now()) {
		_ = s.tokenRepo.RevokeRefreshToken(ctx, refreshToken)
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetUserByID(ctx, record.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.generateTokenResponse(ctx, user)
}

// Logout revokes a refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return apperrors.ErrTokenInvalid
	}
	if _, err := uuid.Parse(refreshToken); err != nil {
		return apperrors.ErrTokenInvalid
	}

	if err := s.tokenRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return apperrors.ErrTokenNotFound
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// GetProfile retrieves the authenticated user's profile
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user information: %w", err)
	}

	return dto.NewUserResponse(user), nil
}

// UpdateProfile updates the authenticated user's profile fields
func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var bio, resumeURL *string
	if req.Bio != "" {
		b := req.Bio
		bio = &b
	}
	if req.ResumeURL != "" {
		r := req.ResumeURL
		resumeURL = &r
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName, bio, resumeURL); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.GetProfile(ctx, userID)
}

// ChangePassword verifies the current password and stores a new hash
func (s *authServiceImpl) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user information: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	if err := s.validatePassword(req.NewPassword); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	logger.Info().Int64("userID", userID).Msg("Password changed")
	return nil
}

// generateTokenResponse creates token response
func (s *authServiceImpl) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	tokenExpiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.tokenRepo.SaveRefreshToken(ctx, refreshToken, user.ID, tokenExpiry); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		User:             dto.NewUserResponse(user),
	}, nil
}
