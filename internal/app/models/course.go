package models

import "time"

// Category represents a course category.
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Course represents a course offered by one or more tutors.
// Tutor assignment and student enrollment live in the course_tutors and
// course_enrollments join tables; both memberships are sets, never lists
// with duplicates.
type Course struct {
	ID          int64        `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"` // globally unique
	Description string       `json:"description" db:"description"`
	CategoryID  int64        `json:"categoryId" db:"category_id"`
	Status      CourseStatus `json:"status" db:"status"`
	Tags        []string     `json:"tags" db:"tags"`
	CreatedBy   int64        `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Category *Category `json:"category,omitempty"`
	Tutors   []*User   `json:"tutors,omitempty"`
}

// CourseSection links a section into a course's ordered content list.
type CourseSection struct {
	CourseID  int64 `json:"courseId" db:"course_id"`
	SectionID int64 `json:"sectionId" db:"section_id"`
	Position  int   `json:"position" db:"position"`
}
