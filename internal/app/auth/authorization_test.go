package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
)

type stubUserReader struct {
	users map[int64]*models.User
}

func (s *stubUserReader) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

type stubCourseReader struct {
	courses  map[int64]*models.Course
	enrolled map[int64]bool
	tutors   map[int64]bool
}

func (s *stubCourseReader) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (s *stubCourseReader) IsEnrolled(_ context.Context, _, userID int64) (bool, error) {
	return s.enrolled[userID], nil
}

func (s *stubCourseReader) IsCourseTutor(_ context.Context, _, userID int64) (bool, error) {
	return s.tutors[userID], nil
}

func newAuthzService() *AuthorizationService {
	users := &stubUserReader{users: map[int64]*models.User{
		1: {ID: 1, RoleType: models.RoleStudent},
		2: {ID: 2, RoleType: models.RoleTutor, IsApproved: true},
		3: {ID: 3, RoleType: models.RoleTutor, IsApproved: false},
	}}
	courses := &stubCourseReader{
		courses:  map[int64]*models.Course{5: {ID: 5, Name: "Algebra"}},
		enrolled: map[int64]bool{1: true},
		tutors:   map[int64]bool{2: true},
	}
	return NewAuthorizationService(users, courses)
}

func TestValidateTutor(t *testing.T) {
	svc := newAuthzService()
	ctx := context.Background()

	tutor, err := svc.ValidateTutor(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), tutor.ID)

	_, err = svc.ValidateTutor(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotTutor)

	_, err = svc.ValidateTutor(ctx, 3)
	assert.ErrorIs(t, err, apperrors.ErrTutorNotApproved)

	_, err = svc.ValidateTutor(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestValidateEnrollment(t *testing.T) {
	svc := newAuthzService()
	ctx := context.Background()

	course, err := svc.ValidateEnrollment(ctx, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, "Algebra", course.Name)

	_, err = svc.ValidateEnrollment(ctx, 5, 2)
	assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)

	// a missing course reads as not-found, not as a membership problem
	_, err = svc.ValidateEnrollment(ctx, 99, 1)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestValidateCourseTutor(t *testing.T) {
	svc := newAuthzService()
	ctx := context.Background()

	_, err := svc.ValidateCourseTutor(ctx, 5, 2)
	assert.NoError(t, err)

	_, err = svc.ValidateCourseTutor(ctx, 5, 3)
	assert.ErrorIs(t, err, apperrors.ErrNotCourseTutor)

	_, err = svc.ValidateCourseTutor(ctx, 99, 2)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestIsTutor(t *testing.T) {
	svc := newAuthzService()

	isTutor, err := svc.IsTutor(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, isTutor)

	isTutor, err = svc.IsTutor(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, isTutor)
}
