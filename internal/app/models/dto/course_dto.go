package dto

import (
	"time"

	"github.com/oguzk/tutorlink/internal/app/models"
)

// CreateCourseRequest represents a tutor's new course. Courses start as drafts.
type CreateCourseRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=200"`
	Description string   `json:"description" binding:"required"`
	CategoryID  int64    `json:"categoryId" binding:"required,gt=0"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateCourseRequest represents a course update by an owning tutor
type UpdateCourseRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=200"`
	Description string   `json:"description" binding:"required"`
	CategoryID  int64    `json:"categoryId" binding:"required,gt=0"`
	Tags        []string `json:"tags,omitempty"`
}

// CourseFilterRequest carries catalog list filters
type CourseFilterRequest struct {
	CategoryID *int64  `form:"categoryId"`
	Tag        *string `form:"tag"`
	Search     *string `form:"search"`
	Page       int     `form:"page,default=1"`
	PageSize   int     `form:"pageSize,default=10"`
}

// AddCourseTutorRequest adds a co-tutor to a course
type AddCourseTutorRequest struct {
	TutorID int64 `json:"tutorId" binding:"required,gt=0"`
}

// AttachSectionRequest attaches an existing section to a course
type AttachSectionRequest struct {
	SectionID int64 `json:"sectionId" binding:"required,gt=0"`
	Position  int   `json:"position" binding:"gte=0"`
}

// CourseResponse represents course information returned by the API
type CourseResponse struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	CategoryID    int64               `json:"categoryId"`
	CategoryName  string              `json:"categoryName,omitempty"`
	Status        models.CourseStatus `json:"status"`
	Tags          []string            `json:"tags"`
	Tutors        []*UserResponse     `json:"tutors,omitempty"`
	Sections      []*SectionResponse  `json:"sections,omitempty"`
	EnrolledCount int64               `json:"enrolledCount"`
	AverageRating float64             `json:"averageRating"`
	RatingCount   int64               `json:"ratingCount"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// CourseListResponse is a paginated catalog page
type CourseListResponse struct {
	Courses        []CourseResponse `json:"courses"`
	PaginationInfo PaginationInfo   `json:"pagination"`
}

// CategoryResponse represents a course category
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateCategoryRequest represents an admin's new category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}
