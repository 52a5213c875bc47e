package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassStatusIsTerminal(t *testing.T) {
	assert.False(t, ClassStatusPending.IsTerminal())
	assert.True(t, ClassStatusAccepted.IsTerminal())
	assert.True(t, ClassStatusRejected.IsTerminal())
}

func TestClassIsParticipant(t *testing.T) {
	studentID := int64(10)
	individual := &Class{TutorID: 20, StudentID: &studentID, Type: ClassTypeIndividual}

	assert.True(t, individual.IsParticipant(10))
	assert.True(t, individual.IsParticipant(20))
	assert.False(t, individual.IsParticipant(30))

	group := &Class{TutorID: 20, Type: ClassTypeGroup}
	assert.True(t, group.IsParticipant(20))
	assert.False(t, group.IsParticipant(10))
}

func TestQuizQuestionHasCorrectOption(t *testing.T) {
	q := &QuizQuestion{Options: []*QuizOption{
		{Body: "a", IsCorrect: false},
		{Body: "b", IsCorrect: false},
	}}
	assert.False(t, q.HasCorrectOption())

	q.Options[1].IsCorrect = true
	assert.True(t, q.HasCorrectOption())

	empty := &QuizQuestion{}
	assert.False(t, empty.HasCorrectOption())
}

func TestUserFullName(t *testing.T) {
	u := &User{FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, "Jane Doe", u.FullName())
}
