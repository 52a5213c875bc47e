package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
)

// RatingDetails is a rating row joined with the reviewer's name
type RatingDetails struct {
	models.Rating
	UserName string
}

// RatingRepository handles database operations for course ratings
type RatingRepository struct {
	DB *pgxpool.Pool
}

// NewRatingRepository creates a new RatingRepository
func NewRatingRepository(db *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{DB: db}
}

// UpsertRating creates the caller's rating for a course, or replaces it if
// one already exists. A user holds at most one rating per course.
func (r *RatingRepository) UpsertRating(ctx context.Context, rating *models.Rating) (*models.Rating, error) {
	row := r.DB.QueryRow(ctx,
		`INSERT INTO ratings (course_id, user_id, rating, review)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (course_id, user_id)
		 DO UPDATE SET rating = EXCLUDED.rating, review = EXCLUDED.review, updated_at = now()
		 RETURNING id, course_id, user_id, rating, review, created_at, updated_at`,
		rating.CourseID, rating.UserID, rating.Rating, rating.Review,
	)

	var stored models.Rating
	err := row.Scan(&stored.ID, &stored.CourseID, &stored.UserID, &stored.Rating, &stored.Review, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// GetRating retrieves one user's rating for a course
func (r *RatingRepository) GetRating(ctx context.Context, courseID, userID int64) (*models.Rating, error) {
	sqlStr, args, err := squirrel.Select("id", "course_id", "user_id", "rating", "review", "created_at", "updated_at").
		From("ratings").
		Where(squirrel.Eq{"course_id": courseID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rating models.Rating
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(
		&rating.ID, &rating.CourseID, &rating.UserID, &rating.Rating, &rating.Review, &rating.CreatedAt, &rating.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRatingNotFound
		}
		return nil, err
	}

	return &rating, nil
}

// GetCourseRatings retrieves a paginated list of a course's ratings with
// reviewer names, newest first.
func (r *RatingRepository) GetCourseRatings(ctx context.Context, courseID int64, offset uint64, limit int) ([]*RatingDetails, int64, error) {
	var total int64
	if err := r.DB.QueryRow(ctx, `SELECT count(*) FROM ratings WHERE course_id = $1`, courseID).Scan(&total); err != nil {
		return nil, 0, err
	}

	sqlStr, args, err := squirrel.Select(
		"r.id", "r.course_id", "r.user_id", "r.rating", "r.review", "r.created_at", "r.updated_at",
		"u.first_name || ' ' || u.last_name AS user_name",
	).From("ratings r").
		Join("users u ON r.user_id = u.id").
		Where(squirrel.Eq{"r.course_id": courseID}).
		OrderBy("r.updated_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var ratings []*RatingDetails
	for rows.Next() {
		// d.Rating names the embedded struct, so the score needs the full path
		var d RatingDetails
		err := rows.Scan(&d.ID, &d.CourseID, &d.UserID, &d.Rating.Rating, &d.Review, &d.CreatedAt, &d.UpdatedAt, &d.UserName)
		if err != nil {
			return nil, 0, err
		}
		ratings = append(ratings, &d)
	}

	return ratings, total, rows.Err()
}

// AverageRating returns a course's mean rating, zero when unrated
func (r *RatingRepository) AverageRating(ctx context.Context, courseID int64) (float64, error) {
	var avg float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(avg(rating), 0) FROM ratings WHERE course_id = $1`,
		courseID,
	).Scan(&avg)
	return avg, err
}
