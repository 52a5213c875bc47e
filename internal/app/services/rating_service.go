package services

import (
	"context"
	"fmt"

	"github.com/oguzk/tutorlink/internal/app/auth"
	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/app/repositories"
	"github.com/oguzk/tutorlink/internal/pkg/helpers"
)

// RatingService defines the interface for course rating operations
type RatingService interface {
	RateCourse(ctx context.Context, studentID, courseID int64, req *dto.UpsertRatingRequest) (*dto.RatingResponse, error)
	ListCourseRatings(ctx context.Context, courseID int64, page, pageSize int) (*dto.RatingListResponse, error)
}

// ratingServiceImpl implements RatingService
type ratingServiceImpl struct {
	ratingRepo   *repositories.RatingRepository
	authzService *auth.AuthorizationService
}

// NewRatingService creates a new RatingService
func NewRatingService(ratingRepo *repositories.RatingRepository, authzService *auth.AuthorizationService) RatingService {
	return &ratingServiceImpl{
		ratingRepo:   ratingRepo,
		authzService: authzService,
	}
}

// RateCourse records an enrolled student's rating for a course. Rating the
// same course again replaces the previous rating rather than adding a
// second one.
func (s *ratingServiceImpl) RateCourse(ctx context.Context, studentID, courseID int64, req *dto.UpsertRatingRequest) (*dto.RatingResponse, error) {
	if _, err := s.authzService.ValidateEnrollment(ctx, courseID, studentID); err != nil {
		return nil, err
	}

	rating, err := s.ratingRepo.UpsertRating(ctx, &models.Rating{
		CourseID: courseID,
		UserID:   studentID,
		Rating:   req.Rating,
		Review:   req.Review,
	})
	if err != nil {
		return nil, fmt.Errorf("rating error: %w", err)
	}

	return &dto.RatingResponse{
		ID:        rating.ID,
		CourseID:  rating.CourseID,
		UserID:    rating.UserID,
		Rating:    rating.Rating,
		Review:    rating.Review,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}, nil
}

// ListCourseRatings returns one page of a course's ratings plus the
// course-wide average.
func (s *ratingServiceImpl) ListCourseRatings(ctx context.Context, courseID int64, page, pageSize int) (*dto.RatingListResponse, error) {
	if _, err := s.authzService.ValidateCourseExists(ctx, courseID); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	details, total, err := s.ratingRepo.GetCourseRatings(ctx, courseID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing ratings: %w", err)
	}

	average, err := s.ratingRepo.AverageRating(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error computing average rating: %w", err)
	}

	ratings := make([]dto.RatingResponse, 0, len(details))
	for _, d := range details {
		ratings = append(ratings, ratingDetailsToResponse(d))
	}

	return &dto.RatingListResponse{
		Ratings:        ratings,
		AverageRating:  average,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

func ratingDetailsToResponse(d *repositories.RatingDetails) dto.RatingResponse {
	return dto.RatingResponse{
		ID:        d.ID,
		CourseID:  d.CourseID,
		UserID:    d.UserID,
		UserName:  d.UserName,
		Rating:    d.Rating.Rating,
		Review:    d.Review,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
