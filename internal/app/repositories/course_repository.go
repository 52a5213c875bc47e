package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
	"github.com/oguzk/tutorlink/internal/pkg/dberrors"
	"github.com/oguzk/tutorlink/internal/pkg/logger"
)

// CourseFilter holds catalog filters for course listing
type CourseFilter struct {
	CategoryID    *int64
	Tag           *string
	Search        *string
	PublishedOnly bool
}

// CourseDetails is a course row joined with its category and aggregates
type CourseDetails struct {
	models.Course
	CategoryName  string
	EnrolledCount int64
	AverageRating float64
	RatingCount   int64
}

// CourseRepository handles database operations for courses, tutor assignment
// and student enrollment
type CourseRepository struct {
	DB *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{DB: db}
}

// CreateCourse inserts a course and assigns the creating tutor in one transaction.
// Returns apperrors.ErrCourseAlreadyExists when the name is taken.
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sqlStr, args, err := squirrel.Insert("courses").
		Columns("name", "description", "category_id", "status", "tags", "created_by").
		Values(course.Name, course.Description, course.CategoryID, course.Status, course.Tags, course.CreatedBy).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_name_key") {
			return 0, apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return 0, err
	}

	// Creator always teaches the course
	if _, err := tx.Exec(ctx,
		`INSERT INTO course_tutors (course_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		id, course.CreatedBy,
	); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return id, nil
}

// GetCourseByID retrieves a bare course row
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	sqlStr, args, err := squirrel.Select("id", "name", "description", "category_id", "status", "tags", "created_by", "created_at", "updated_at").
		From("courses").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var c models.Course
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(
		&c.ID, &c.Name, &c.Description, &c.CategoryID, &c.Status, &c.Tags, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, err
	}

	return &c, nil
}

// selectCourseDetailsQuery is the common join for catalog queries
func (r *CourseRepository) selectCourseDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"c.id", "c.name", "c.description", "c.category_id", "c.status", "c.tags", "c.created_by", "c.created_at", "c.updated_at",
		"cat.name AS category_name",
		"(SELECT count(*) FROM course_enrollments ce WHERE ce.course_id = c.id) AS enrolled_count",
		"COALESCE((SELECT avg(rating) FROM ratings rt WHERE rt.course_id = c.id), 0) AS average_rating",
		"(SELECT count(*) FROM ratings rt WHERE rt.course_id = c.id) AS rating_count",
	).From("courses c").
		Join("categories cat ON c.category_id = cat.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanCourseDetails(row pgx.Row) (*CourseDetails, error) {
	var d CourseDetails
	err := row.Scan(
		&d.ID, &d.Name, &d.Description, &d.CategoryID, &d.Status, &d.Tags, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
		&d.CategoryName, &d.EnrolledCount, &d.AverageRating, &d.RatingCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, err
	}
	return &d, nil
}

// GetCourseDetails retrieves a course with category and rating aggregates
func (r *CourseRepository) GetCourseDetails(ctx context.Context, id int64) (*CourseDetails, error) {
	sqlStr, args, err := r.selectCourseDetailsQuery().
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	return scanCourseDetails(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetAllCourses retrieves a paginated, filtered catalog page
func (r *CourseRepository) GetAllCourses(ctx context.Context, filter CourseFilter, offset uint64, limit int) ([]*CourseDetails, int64, error) {
	builder := r.selectCourseDetailsQuery()
	countBuilder := squirrel.Select("count(*)").From("courses c").PlaceholderFormat(squirrel.Dollar)

	if filter.PublishedOnly {
		builder = builder.Where(squirrel.Eq{"c.status": models.CourseStatusPublished})
		countBuilder = countBuilder.Where(squirrel.Eq{"c.status": models.CourseStatusPublished})
	}
	if filter.CategoryID != nil {
		builder = builder.Where(squirrel.Eq{"c.category_id": *filter.CategoryID})
		countBuilder = countBuilder.Where(squirrel.Eq{"c.category_id": *filter.CategoryID})
	}
	if filter.Tag != nil {
		builder = builder.Where(squirrel.Expr("c.tags @> ARRAY[?]::text[]", *filter.Tag))
		countBuilder = countBuilder.Where(squirrel.Expr("c.tags @> ARRAY[?]::text[]", *filter.Tag))
	}
	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		builder = builder.Where(squirrel.ILike{"c.name": pattern})
		countBuilder = countBuilder.Where(squirrel.ILike{"c.name": pattern})
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.DB.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sqlStr, args, err := builder.
		OrderBy("c.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []*CourseDetails
	for rows.Next() {
		d, err := scanCourseDetails(rows)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, d)
	}

	return courses, total, rows.Err()
}

// UpdateCourse updates a course's mutable fields
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	sqlStr, args, err := squirrel.Update("courses").
		Set("name", course.Name).
		Set("description", course.Description).
		Set("category_id", course.CategoryID).
		Set("tags", course.Tags).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": course.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_name_key") {
			return apperrors.ErrCourseAlreadyExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// SetCourseStatus moves a course between DRAFT and PUBLISHED
func (r *CourseRepository) SetCourseStatus(ctx context.Context, courseID int64, status models.CourseStatus) error {
	sqlStr, args, err := squirrel.Update("courses").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": courseID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// EnrollStudent adds a student to the course's enrolled set. Enrolling twice
// is a no-op, which keeps retried requests harmless.
func (r *CourseRepository) EnrollStudent(ctx context.Context, courseID, userID int64) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO course_enrollments (course_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		courseID, userID,
	)
	return err
}

// IsEnrolled reports whether the user is in the course's enrolled set
func (r *CourseRepository) IsEnrolled(ctx context.Context, courseID, userID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM course_enrollments WHERE course_id = $1 AND user_id = $2)`,
		courseID, userID,
	).Scan(&exists)
	return exists, err
}

// AddTutor adds a tutor to the course's tutor set, idempotently
func (r *CourseRepository) AddTutor(ctx context.Context, courseID, userID int64) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO course_tutors (course_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		courseID, userID,
	)
	return err
}

// IsCourseTutor reports whether the user teaches the course
func (r *CourseRepository) IsCourseTutor(ctx context.Context, courseID, userID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM course_tutors WHERE course_id = $1 AND user_id = $2)`,
		courseID, userID,
	).Scan(&exists)
	return exists, err
}

// GetCourseTutors retrieves the tutors assigned to a course
func (r *CourseRepository) GetCourseTutors(ctx context.Context, courseID int64) ([]*models.User, error) {
	sqlStr, args, err := squirrel.Select(
		"u.id", "u.email", "u.password", "u.first_name", "u.last_name", "u.role_type",
		"u.bio", "u.resume_url", "u.is_active", "u.is_approved",
		"u.created_at", "u.updated_at", "u.last_login_at",
	).From("course_tutors ct").
		Join("users u ON ct.user_id = u.id").
		Where(squirrel.Eq{"ct.course_id": courseID}).
		OrderBy("u.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tutors []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		tutors = append(tutors, u)
	}

	return tutors, rows.Err()
}

// AttachSection links a section into the course's ordered content list
func (r *CourseRepository) AttachSection(ctx context.Context, courseID, sectionID int64, position int) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO course_sections (course_id, section_id, position) VALUES ($1, $2, $3)
		 ON CONFLICT (course_id, section_id) DO UPDATE SET position = EXCLUDED.position`,
		courseID, sectionID, position,
	)
	return err
}

// SectionCount returns how many sections a course carries
func (r *CourseRepository) SectionCount(ctx context.Context, courseID int64) (int64, error) {
	var count int64
	err := r.DB.QueryRow(ctx,
		`SELECT count(*) FROM course_sections WHERE course_id = $1`,
		courseID,
	).Scan(&count)
	return count, err
}

// GetCourseSections retrieves a course's sections in content order
func (r *CourseRepository) GetCourseSections(ctx context.Context, courseID int64) ([]*models.Section, []int, error) {
	sqlStr, args, err := squirrel.Select("s.id", "s.tutor_id", "s.title", "s.video_url", "s.created_at", "cs.position").
		From("course_sections cs").
		Join("sections s ON cs.section_id = s.id").
		Where(squirrel.Eq{"cs.course_id": courseID}).
		OrderBy("cs.position ASC", "s.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var sections []*models.Section
	var positions []int
	for rows.Next() {
		var s models.Section
		var position int
		if err := rows.Scan(&s.ID, &s.TutorID, &s.Title, &s.VideoURL, &s.CreatedAt, &position); err != nil {
			return nil, nil, err
		}
		sections = append(sections, &s)
		positions = append(positions, position)
	}

	return sections, positions, rows.Err()
}

// EnrolledCourseIDs returns the IDs of courses a student is enrolled in
func (r *CourseRepository) EnrolledCourseIDs(ctx context.Context, userID int64) ([]int64, error) {
	return r.courseIDs(ctx, "course_enrollments", userID)
}

// TaughtCourseIDs returns the IDs of courses a tutor teaches
func (r *CourseRepository) TaughtCourseIDs(ctx context.Context, userID int64) ([]int64, error) {
	return r.courseIDs(ctx, "course_tutors", userID)
}

func (r *CourseRepository) courseIDs(ctx context.Context, table string, userID int64) ([]int64, error) {
	sqlStr, args, err := squirrel.Select("course_id").
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
