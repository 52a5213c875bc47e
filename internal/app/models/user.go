package models

import (
	"time"
)

// User defines the user model based on the 'users' table.
// Email is unique per role type, so the same address may hold both a
// student and a tutor account.
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"user@example.com"`
	Password    string     `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	FirstName   string     `json:"firstName" db:"first_name" example:"John"`
	LastName    string     `json:"lastName" db:"last_name" example:"Doe"`
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`
	Bio         *string    `json:"bio,omitempty" db:"bio"`
	ResumeURL   *string    `json:"resumeUrl,omitempty" db:"resume_url"` // tutors only
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	IsApproved  bool       `json:"isApproved" db:"is_approved" example:"true"` // tutors require admin approval
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// RefreshToken defines a stored refresh token based on the 'refresh_tokens' table
type RefreshToken struct {
	Token     string    `json:"token" db:"token"`
	UserID    int64     `json:"userId" db:"user_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
