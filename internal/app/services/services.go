package services

import (
	"context"
	"time"

	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/app/repositories"
)

// Services in this package hold the business rules between controllers and
// repositories. Each service is an interface with a single implementation;
// the implementations depend on the narrow store interfaces below so tests
// can swap the database out for in-memory fakes.

// ClassStore is the slice of the class repository the class service uses.
type ClassStore interface {
	CreateClass(ctx context.Context, class *models.Class) (*models.Class, error)
	GetClassByID(ctx context.Context, id int64) (*models.Class, error)
	ResolveClassIfPending(ctx context.Context, id int64, status models.ClassStatus, classLink *string, durationMinutes *int) (*models.Class, error)
	AcceptedClassesForParticipant(ctx context.Context, userID int64) ([]*repositories.ClassDetails, error)
	GroupClassesForCourses(ctx context.Context, courseIDs []int64) ([]*repositories.ClassDetails, error)
	GroupClassesForCourse(ctx context.Context, courseID int64) ([]*repositories.ClassDetails, error)
	PendingRequestsForTutor(ctx context.Context, tutorID int64) ([]*repositories.ClassDetails, error)
	RequestsForStudent(ctx context.Context, studentID int64) ([]*repositories.ClassDetails, error)
}

// CourseMembershipStore answers which courses a user belongs to.
type CourseMembershipStore interface {
	EnrolledCourseIDs(ctx context.Context, userID int64) ([]int64, error)
	TaughtCourseIDs(ctx context.Context, userID int64) ([]int64, error)
}

// UserStore is the slice of the user repository the auth and admin services use.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmailAndRole(ctx context.Context, email string, role models.RoleType) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, bio, resumeURL *string) error
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
	UpdateLastLogin(ctx context.Context, userID int64) error
	SetApproval(ctx context.Context, userID int64, approved bool) error
	SetActive(ctx context.Context, userID int64, active bool) error
	GetAllUsers(ctx context.Context, role *models.RoleType, offset uint64, limit int) ([]*models.User, int64, error)
}

// TokenStore persists refresh tokens.
type TokenStore interface {
	SaveRefreshToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, token string) error
}
