package dto

import "github.com/oguzk/tutorlink/internal/app/models"

// RegisterRequest represents a signup request for a student or tutor account
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required,min=2,max=100"`
	LastName  string `json:"lastName" binding:"required,min=2,max=100"`
	RoleType  string `json:"roleType" binding:"required,oneof=STUDENT TUTOR"`
	Bio       string `json:"bio,omitempty"`
	ResumeURL string `json:"resumeUrl,omitempty" binding:"omitempty,url"`
}

// LoginRequest represents a login request. RoleType is required because the
// same email may hold accounts of different types.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	RoleType string `json:"roleType" binding:"required,oneof=ADMIN STUDENT TUTOR"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest revokes a refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents an issued token pair
type TokenResponse struct {
	AccessToken      string        `json:"accessToken"`
	RefreshToken     string        `json:"refreshToken"`
	ExpiresIn        int           `json:"expiresIn"`
	RefreshExpiresIn int           `json:"refreshExpiresIn"`
	User             *UserResponse `json:"user"`
}

// UserResponse represents user information returned by the API
type UserResponse struct {
	ID         int64           `json:"id"`
	Email      string          `json:"email"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	RoleType   models.RoleType `json:"roleType"`
	Bio        *string         `json:"bio,omitempty"`
	ResumeURL  *string         `json:"resumeUrl,omitempty"`
	IsActive   bool            `json:"isActive"`
	IsApproved bool            `json:"isApproved"`
}

// NewUserResponse maps a user model to its API representation
func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		RoleType:   user.RoleType,
		Bio:        user.Bio,
		ResumeURL:  user.ResumeURL,
		IsActive:   user.IsActive,
		IsApproved: user.IsApproved,
	}
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"required,min=2,max=100"`
	LastName  string `json:"lastName" binding:"required,min=2,max=100"`
	Bio       string `json:"bio,omitempty"`
	ResumeURL string `json:"resumeUrl,omitempty" binding:"omitempty,url"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}
