package models

import "time"

// Class represents a scheduled or requested tutoring session.
//
// An INDIVIDUAL class links exactly one student, one tutor and one course
// and begins life as a PENDING request created by the student. A GROUP
// class is created directly by a tutor for a whole course, carries no
// student owner (StudentID is nil) and is born ACCEPTED.
//
// Only the referenced tutor may resolve a PENDING request, and a resolved
// class never transitions again.
type Class struct {
	ID              int64       `json:"id" db:"id"`
	CourseID        int64       `json:"courseId" db:"course_id"`
	TutorID         int64       `json:"tutorId" db:"tutor_id"`
	StudentID       *int64      `json:"studentId,omitempty" db:"student_id"` // nil iff Type == GROUP
	Type            ClassType   `json:"type" db:"class_type"`
	Status          ClassStatus `json:"status" db:"status"`
	ScheduledAt     *time.Time  `json:"scheduledAt,omitempty" db:"scheduled_at"`
	DurationMinutes *int        `json:"durationMinutes,omitempty" db:"duration_minutes"` // set on acceptance
	ClassLink       *string     `json:"classLink,omitempty" db:"class_link"`             // set on acceptance
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Course  *Course `json:"course,omitempty"`
	Tutor   *User   `json:"tutor,omitempty"`
	Student *User   `json:"student,omitempty"`
}

// IsParticipant reports whether the given user is the class's student or tutor.
func (c *Class) IsParticipant(userID int64) bool {
	if c.TutorID == userID {
		return true
	}
	return c.StudentID != nil && *c.StudentID == userID
}
