package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oguzk/tutorlink/internal/app/auth"
	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
)

// The quiz rule is enforced before the repository is touched, so a nil
// repository is enough to exercise the rejection paths.
func TestCreateSectionRejectsQuizWithoutCorrectOption(t *testing.T) {
	users := &fakeUserReader{users: map[int64]*models.User{
		testTutorID: {ID: testTutorID, RoleType: models.RoleTutor, IsApproved: true},
	}}
	authz := auth.NewAuthorizationService(users, &fakeCourseReader{})
	svc := NewSectionService(nil, authz)

	_, err := svc.CreateSection(context.Background(), testTutorID, &dto.CreateSectionRequest{
		Title:    "Derivatives",
		VideoURL: "https://videos.example.com/derivatives",
		Questions: []dto.QuizQuestionRequest{
			{
				Prompt: "What is d/dx of x^2?",
				Options: []dto.QuizOptionRequest{
					{Body: "2x", IsCorrect: false},
					{Body: "x", IsCorrect: false},
				},
			},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrQuizQuestionInvalid)
}

func TestCreateSectionRequiresTutor(t *testing.T) {
	users := &fakeUserReader{users: map[int64]*models.User{
		testStudentID: {ID: testStudentID, RoleType: models.RoleStudent},
	}}
	authz := auth.NewAuthorizationService(users, &fakeCourseReader{})
	svc := NewSectionService(nil, authz)

	_, err := svc.CreateSection(context.Background(), testStudentID, &dto.CreateSectionRequest{
		Title:    "Derivatives",
		VideoURL: "https://videos.example.com/derivatives",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotTutor)
}
