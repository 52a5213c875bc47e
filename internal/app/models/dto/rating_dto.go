package dto

import "time"

// UpsertRatingRequest creates or replaces the caller's rating for a course
type UpsertRatingRequest struct {
	Rating int    `json:"rating" binding:"required,gte=1,lte=5"`
	Review string `json:"review" binding:"required"`
}

// RatingResponse represents a rating returned by the API
type RatingResponse struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"courseId"`
	UserID    int64     `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RatingListResponse is a paginated list of ratings for one course
type RatingListResponse struct {
	Ratings        []RatingResponse `json:"ratings"`
	AverageRating  float64          `json:"averageRating"`
	PaginationInfo PaginationInfo   `json:"pagination"`
}
