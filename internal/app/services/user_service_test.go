package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
)

func newUserServiceFixture() (*fakeUserStore, UserService) {
	users := newFakeUserStore()
	users.users[1] = &models.User{ID: 1, Email: "admin@test", RoleType: models.RoleAdmin, IsActive: true}
	users.users[2] = &models.User{ID: 2, Email: "tutor@test", RoleType: models.RoleTutor, IsActive: true}
	users.users[3] = &models.User{ID: 3, Email: "student@test", RoleType: models.RoleStudent, IsActive: true}
	users.nextID = 4
	return users, NewUserService(users)
}

func TestListUsersByRole(t *testing.T) {
	_, svc := newUserServiceFixture()

	role := "TUTOR"
	resp, err := svc.ListUsers(context.Background(), &dto.UserFilterRequest{RoleType: &role, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, resp.Users, 1)
	assert.Equal(t, models.RoleTutor, resp.Users[0].RoleType)

	all, err := svc.ListUsers(context.Background(), &dto.UserFilterRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, all.Users, 3)
	assert.Equal(t, int64(3), all.PaginationInfo.TotalItems)
}

func TestSetTutorApproval(t *testing.T) {
	store, svc := newUserServiceFixture()

	resp, err := svc.SetTutorApproval(context.Background(), 2, true)
	require.NoError(t, err)
	assert.True(t, resp.IsApproved)
	assert.True(t, store.users[2].IsApproved)

	t.Run("students carry no approval flag", func(t *testing.T) {
		_, err := svc.SetTutorApproval(context.Background(), 3, true)
		assert.ErrorIs(t, err, apperrors.ErrNotTutor)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.SetTutorApproval(context.Background(), 99, true)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestSetUserActive(t *testing.T) {
	store, svc := newUserServiceFixture()

	resp, err := svc.SetUserActive(context.Background(), 3, false)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.False(t, store.users[3].IsActive)

	_, err = svc.SetUserActive(context.Background(), 99, false)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
