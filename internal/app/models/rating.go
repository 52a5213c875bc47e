package models

import "time"

// Rating is a (course, user) review pair. A user keeps at most one rating
// per course; repeated submissions update the existing row.
type Rating struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"` // 1..5
	Review    string    `json:"review" db:"review"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	User *User `json:"user,omitempty"`
}
