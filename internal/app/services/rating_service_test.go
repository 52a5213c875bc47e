package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/app/repositories"
)

// The embedded models.Rating shadows its own score field on RatingDetails,
// so the mapper must reach through the embedded struct explicitly.
func TestRatingDetailsToResponse(t *testing.T) {
	now := time.Now().UTC()
	d := &repositories.RatingDetails{
		Rating: models.Rating{
			ID:        7,
			CourseID:  testCourseID,
			UserID:    testStudentID,
			Rating:    4,
			Review:    "clear explanations, well paced",
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserName: "Jane Doe",
	}

	resp := ratingDetailsToResponse(d)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, testCourseID, resp.CourseID)
	assert.Equal(t, testStudentID, resp.UserID)
	assert.Equal(t, "Jane Doe", resp.UserName)
	assert.Equal(t, 4, resp.Rating)
	assert.Equal(t, "clear explanations, well paced", resp.Review)
	assert.Equal(t, now, resp.CreatedAt)
	assert.Equal(t, now, resp.UpdatedAt)
}
