package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
	"github.com/oguzk/tutorlink/internal/pkg/auth"
)

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (int64, error) {
	for _, u := range f.users {
		if u.Email == user.Email && u.RoleType == user.RoleType {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	stored := *user
	stored.ID = f.nextID
	f.users[stored.ID] = &stored
	f.nextID++
	return stored.ID, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetUserByEmailAndRole(_ context.Context, email string, role models.RoleType) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.RoleType == role {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, userID int64, firstName, lastName string, bio, resumeURL *string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.FirstName = firstName
	user.LastName = lastName
	user.Bio = bio
	user.ResumeURL = resumeURL
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID int64, hashedPassword string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, userID int64) error {
	now := time.Now()
	if user, ok := f.users[userID]; ok {
		user.LastLoginAt = &now
	}
	return nil
}

func (f *fakeUserStore) SetApproval(_ context.Context, userID int64, approved bool) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsApproved = approved
	return nil
}

func (f *fakeUserStore) SetActive(_ context.Context, userID int64, active bool) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsActive = active
	return nil
}

func (f *fakeUserStore) GetAllUsers(_ context.Context, role *models.RoleType, _ uint64, _ int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range f.users {
		if role == nil || u.RoleType == *role {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

type fakeTokenStore struct {
	tokens map[string]*models.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*models.RefreshToken)}
}

func (f *fakeTokenStore) SaveRefreshToken(_ context.Context, token string, userID int64, expiresAt time.Time) error {
	f.tokens[token] = &models.RefreshToken{Token: token, UserID: userID, ExpiresAt: expiresAt}
	return nil
}

func (f *fakeTokenStore) GetRefreshToken(_ context.Context, token string) (*models.RefreshToken, error) {
	record, ok := f.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	return record, nil
}

func (f *fakeTokenStore) RevokeRefreshToken(_ context.Context, token string) error {
	record, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	record.Revoked = true
	return nil
}

type authFixture struct {
	users   *fakeUserStore
	tokens  *fakeTokenStore
	service AuthService
}

func newAuthFixture() *authFixture {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	return &authFixture{
		users:   users,
		tokens:  tokens,
		service: NewAuthService(users, tokens, jwtService),
	}
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:     "Jane.Doe@Example.com",
		Password:  "sup3rsecret",
		FirstName: "Jane",
		LastName:  "Doe",
		RoleType:  "STUDENT",
	}
}

func TestRegisterStudent(t *testing.T) {
	f := newAuthFixture()

	resp, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "jane.doe@example.com", resp.User.Email, "emails are stored lowercased")
	assert.True(t, resp.User.IsApproved, "students need no admin review")

	_, ok := f.tokens.tokens[resp.RefreshToken]
	assert.True(t, ok, "refresh token is persisted")
}

func TestRegisterTutorStartsUnapproved(t *testing.T) {
	f := newAuthFixture()

	req := registerRequest()
	req.RoleType = "TUTOR"
	req.Bio = "10 years teaching calculus"

	resp, err := f.service.Register(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.User.IsApproved)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.RegisterRequest)
		wantErr error
	}{
		{"bad email", func(r *dto.RegisterRequest) { r.Email = "not-an-email" }, apperrors.ErrInvalidEmail},
		{"short password", func(r *dto.RegisterRequest) { r.Password = "ab1" }, apperrors.ErrInvalidPassword},
		{"password without digit", func(r *dto.RegisterRequest) { r.Password = "onlyletters" }, apperrors.ErrInvalidPassword},
		{"password without letter", func(r *dto.RegisterRequest) { r.Password = "1234567890" }, apperrors.ErrInvalidPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			req := registerRequest()
			tt.mutate(req)
			_, err := f.service.Register(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterDuplicateEmailSameRole(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = f.service.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	// same email under a different account type is a distinct account
	req := registerRequest()
	req.RoleType = "TUTOR"
	_, err = f.service.Register(context.Background(), req)
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	_, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	resp, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane.doe@example.com",
		Password: "sup3rsecret",
		RoleType: "STUDENT",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.service.Login(context.Background(), &dto.LoginRequest{
			Email:    "jane.doe@example.com",
			Password: "wrong",
			RoleType: "STUDENT",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("wrong role", func(t *testing.T) {
		_, err := f.service.Login(context.Background(), &dto.LoginRequest{
			Email:    "jane.doe@example.com",
			Password: "sup3rsecret",
			RoleType: "ADMIN",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		require.NoError(t, f.users.SetActive(context.Background(), resp.User.ID, false))
		defer func() { _ = f.users.SetActive(context.Background(), resp.User.ID, true) }()

		_, err := f.service.Login(context.Background(), &dto.LoginRequest{
			Email:    "jane.doe@example.com",
			Password: "sup3rsecret",
			RoleType: "STUDENT",
		})
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})
}

func TestRefreshTokenRotation(t *testing.T) {
	f := newAuthFixture()
	registered, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	refreshed, err := f.service.RefreshToken(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// the old token was revoked by the rotation
	_, err = f.service.RefreshToken(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshTokenExpired(t *testing.T) {
	f := newAuthFixture()
	registered, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	f.tokens.tokens[registered.RefreshToken].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = f.service.RefreshToken(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	assert.True(t, f.tokens.tokens[registered.RefreshToken].Revoked, "expired tokens are revoked on sight")
}

func TestRefreshTokenUnknown(t *testing.T) {
	f := newAuthFixture()
	_, err := f.service.RefreshToken(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	_, err = f.service.RefreshToken(context.Background(), "  ")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestRefreshTokenMalformed(t *testing.T) {
	f := newAuthFixture()

	// non-UUID input is rejected before any store lookup
	_, err := f.service.RefreshToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	assert.ErrorIs(t, f.service.Logout(context.Background(), "garbage"), apperrors.ErrTokenInvalid)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newAuthFixture()
	registered, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), registered.RefreshToken))

	_, err = f.service.RefreshToken(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture()
	registered, err := f.service.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	userID := registered.User.ID

	t.Run("wrong current password", func(t *testing.T) {
		err := f.service.ChangePassword(context.Background(), userID, &dto.ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "n3wsecret",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("weak new password", func(t *testing.T) {
		err := f.service.ChangePassword(context.Background(), userID, &dto.ChangePasswordRequest{
			CurrentPassword: "sup3rsecret",
			NewPassword:     "short",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	require.NoError(t, f.service.ChangePassword(context.Background(), userID, &dto.ChangePasswordRequest{
		CurrentPassword: "sup3rsecret",
		NewPassword:     "n3wsecret",
	}))

	_, err = f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane.doe@example.com",
		Password: "n3wsecret",
		RoleType: "STUDENT",
	})
	assert.NoError(t, err)
}
