package dto

import (
	"time"

	"github.com/oguzk/tutorlink/internal/app/models"
)

// CreateClassRequest represents a student's request for an individual class.
// The requesting student is always taken from the authenticated context,
// never from the payload.
type CreateClassRequest struct {
	CourseID int64     `json:"courseId" binding:"required,gt=0"`
	TutorID  int64     `json:"tutorId" binding:"required,gt=0"`
	Time     time.Time `json:"time" binding:"required"`
}

// RespondClassRequest represents a tutor's resolution of a pending request.
// ClassLink and Duration are required when accepting, ignored when rejecting.
type RespondClassRequest struct {
	Status    string `json:"status" binding:"required"`
	ClassLink string `json:"classLink,omitempty"`
	Duration  int    `json:"duration,omitempty" binding:"omitempty,gte=15,lte=240"`
}

// CreateGroupClassRequest represents a tutor-initiated group class for a course
type CreateGroupClassRequest struct {
	Time      time.Time `json:"time" binding:"required"`
	Duration  int       `json:"duration" binding:"required,gte=15,lte=240"`
	ClassLink string    `json:"classLink" binding:"required,url"`
}

// ClassResponse represents class information returned by the API
type ClassResponse struct {
	ID              int64              `json:"id"`
	CourseID        int64              `json:"courseId"`
	CourseName      string             `json:"courseName,omitempty"`
	TutorID         int64              `json:"tutorId"`
	TutorName       string             `json:"tutorName,omitempty"`
	StudentID       *int64             `json:"studentId,omitempty"`
	StudentName     string             `json:"studentName,omitempty"`
	Type            models.ClassType   `json:"type"`
	Status          models.ClassStatus `json:"status"`
	ScheduledAt     time.Time          `json:"scheduledAt"`
	DurationMinutes *int               `json:"durationMinutes,omitempty"`
	ClassLink       *string            `json:"classLink,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// ScheduleResponse is the calendar projection for one participant
type ScheduleResponse struct {
	Classes []ClassResponse `json:"classes"`
}

// ClassListResponse is a paginated list of classes
type ClassListResponse struct {
	Classes        []ClassResponse `json:"classes"`
	PaginationInfo PaginationInfo  `json:"pagination"`
}
