package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
	"github.com/oguzk/tutorlink/internal/pkg/logger"
)

// classColumns is the canonical column list for scanning classes
var classColumns = []string{
	"id", "course_id", "tutor_id", "student_id", "class_type", "status",
	"scheduled_at", "duration_minutes", "class_link", "created_at", "updated_at",
}

// ClassDetails is a class row joined with participant and course names for
// schedule views.
type ClassDetails struct {
	models.Class
	CourseName  string
	TutorName   string
	StudentName *string
}

// ClassRepository handles database operations for classes
type ClassRepository struct {
	DB *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{DB: db}
}

func scanClass(row pgx.Row) (*models.Class, error) {
	var c models.Class
	err := row.Scan(
		&c.ID, &c.CourseID, &c.TutorID, &c.StudentID, &c.Type, &c.Status,
		&c.ScheduledAt, &c.DurationMinutes, &c.ClassLink, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, err
	}
	return &c, nil
}

// CreateClass inserts a new class row and returns the stored record
func (r *ClassRepository) CreateClass(ctx context.Context, class *models.Class) (*models.Class, error) {
	sqlStr, args, err := squirrel.Insert("classes").
		Columns("course_id", "tutor_id", "student_id", "class_type", "status", "scheduled_at", "duration_minutes", "class_link").
		Values(class.CourseID, class.TutorID, class.StudentID, class.Type, class.Status, class.ScheduledAt, class.DurationMinutes, class.ClassLink).
		Suffix("RETURNING " + strings.Join(classColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create class SQL")
		return nil, err
	}

	return scanClass(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetClassByID retrieves a class by ID
func (r *ClassRepository) GetClassByID(ctx context.Context, id int64) (*models.Class, error) {
	sqlStr, args, err := squirrel.Select(classColumns...).
		From("classes").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	return scanClass(r.DB.QueryRow(ctx, sqlStr, args...))
}

// ResolveClassIfPending moves a class from PENDING to the given terminal
// status, attaching the meeting link and duration in the same statement.
//
// The WHERE clause matches on the current PENDING status, so of two
// concurrent resolutions exactly one wins; the loser sees zero rows and
// gets apperrors.ErrClassAlreadyFinal. Status, link and duration commit
// together or not at all.
func (r *ClassRepository) ResolveClassIfPending(ctx context.Context, id int64, status models.ClassStatus, classLink *string, durationMinutes *int) (*models.Class, error) {
	sqlStr, args, err := squirrel.Update("classes").
		Set("status", status).
		Set("class_link", classLink).
		Set("duration_minutes", durationMinutes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": models.ClassStatusPending}).
		Suffix("RETURNING " + strings.Join(classColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	class, err := scanClass(r.DB.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, apperrors.ErrClassNotFound) {
			// The row exists but is no longer PENDING, or was never there;
			// the caller distinguishes via its earlier read.
			return nil, apperrors.ErrClassAlreadyFinal
		}
		return nil, err
	}

	return class, nil
}

// selectClassDetailsQuery joins classes with course and participant names
func (r *ClassRepository) selectClassDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"cl.id", "cl.course_id", "cl.tutor_id", "cl.student_id", "cl.class_type", "cl.status",
		"cl.scheduled_at", "cl.duration_minutes", "cl.class_link", "cl.created_at", "cl.updated_at",
		"c.name AS course_name",
		"t.first_name || ' ' || t.last_name AS tutor_name",
		"CASE WHEN s.id IS NULL THEN NULL ELSE s.first_name || ' ' || s.last_name END AS student_name",
	).From("classes cl").
		Join("courses c ON cl.course_id = c.id").
		Join("users t ON cl.tutor_id = t.id").
		LeftJoin("users s ON cl.student_id = s.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanClassDetails(row pgx.Row) (*ClassDetails, error) {
	var d ClassDetails
	err := row.Scan(
		&d.ID, &d.CourseID, &d.TutorID, &d.StudentID, &d.Type, &d.Status,
		&d.ScheduledAt, &d.DurationMinutes, &d.ClassLink, &d.CreatedAt, &d.UpdatedAt,
		&d.CourseName, &d.TutorName, &d.StudentName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *ClassRepository) queryClassDetails(ctx context.Context, builder squirrel.SelectBuilder) ([]*ClassDetails, error) {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*ClassDetails
	for rows.Next() {
		d, err := scanClassDetails(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, d)
	}

	return classes, rows.Err()
}

// AcceptedClassesForParticipant retrieves ACCEPTED individual classes where
// the user is the student or the tutor.
func (r *ClassRepository) AcceptedClassesForParticipant(ctx context.Context, userID int64) ([]*ClassDetails, error) {
	builder := r.selectClassDetailsQuery().
		Where(squirrel.Eq{"cl.status": models.ClassStatusAccepted, "cl.class_type": models.ClassTypeIndividual}).
		Where(squirrel.Or{
			squirrel.Eq{"cl.tutor_id": userID},
			squirrel.Eq{"cl.student_id": userID},
		}).
		OrderBy("cl.scheduled_at ASC NULLS LAST", "cl.id ASC")

	return r.queryClassDetails(ctx, builder)
}

// GroupClassesForCourses retrieves group classes belonging to any of the
// given courses.
func (r *ClassRepository) GroupClassesForCourses(ctx context.Context, courseIDs []int64) ([]*ClassDetails, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	builder := r.selectClassDetailsQuery().
		Where(squirrel.Eq{"cl.class_type": models.ClassTypeGroup, "cl.course_id": courseIDs}).
		OrderBy("cl.scheduled_at ASC NULLS LAST", "cl.id ASC")

	return r.queryClassDetails(ctx, builder)
}

// GroupClassesForCourse retrieves the group classes of one course
func (r *ClassRepository) GroupClassesForCourse(ctx context.Context, courseID int64) ([]*ClassDetails, error) {
	return r.GroupClassesForCourses(ctx, []int64{courseID})
}

// PendingRequestsForTutor retrieves a tutor's unresolved class requests,
// oldest first.
func (r *ClassRepository) PendingRequestsForTutor(ctx context.Context, tutorID int64) ([]*ClassDetails, error) {
	builder := r.selectClassDetailsQuery().
		Where(squirrel.Eq{"cl.tutor_id": tutorID, "cl.status": models.ClassStatusPending}).
		OrderBy("cl.created_at ASC")

	return r.queryClassDetails(ctx, builder)
}

// RequestsForStudent retrieves all of a student's class requests, newest first
func (r *ClassRepository) RequestsForStudent(ctx context.Context, studentID int64) ([]*ClassDetails, error) {
	builder := r.selectClassDetailsQuery().
		Where(squirrel.Eq{"cl.student_id": studentID}).
		OrderBy("cl.created_at DESC")

	return r.queryClassDetails(ctx, builder)
}
