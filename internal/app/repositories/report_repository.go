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

// ReportDetails is a report row joined with the course name
type ReportDetails struct {
	models.Report
	CourseName string
}

// ReportRepository handles database operations for flagged-course reports
type ReportRepository struct {
	DB *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{DB: db}
}

// CreateReport inserts a new report and returns its ID
func (r *ReportRepository) CreateReport(ctx context.Context, report *models.Report) (int64, error) {
	sqlStr, args, err := squirrel.Insert("reports").
		Columns("course_id", "reporter_id", "course_owner_id", "reason", "status").
		Values(report.CourseID, report.ReporterID, report.CourseOwnerID, report.Reason, models.ReportStatusOpen).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

// GetReportByID retrieves a report by ID
func (r *ReportRepository) GetReportByID(ctx context.Context, id int64) (*models.Report, error) {
	sqlStr, args, err := squirrel.Select("id", "course_id", "reporter_id", "course_owner_id", "reason", "status", "resolution", "created_at").
		From("reports").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var report models.Report
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(
		&report.ID, &report.CourseID, &report.ReporterID, &report.CourseOwnerID,
		&report.Reason, &report.Status, &report.Resolution, &report.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, err
	}

	return &report, nil
}

// GetAllReports retrieves a paginated list of reports, optionally filtered
// by status, newest first.
func (r *ReportRepository) GetAllReports(ctx context.Context, status *models.ReportStatus, offset uint64, limit int) ([]*ReportDetails, int64, error) {
	builder := squirrel.Select(
		"r.id", "r.course_id", "r.reporter_id", "r.course_owner_id", "r.reason", "r.status", "r.resolution", "r.created_at",
		"c.name AS course_name",
	).From("reports r").
		Join("courses c ON r.course_id = c.id").
		PlaceholderFormat(squirrel.Dollar)
	countBuilder := squirrel.Select("count(*)").From("reports r").PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		builder = builder.Where(squirrel.Eq{"r.status": *status})
		countBuilder = countBuilder.Where(squirrel.Eq{"r.status": *status})
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
		OrderBy("r.created_at DESC").
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

	var reports []*ReportDetails
	for rows.Next() {
		var d ReportDetails
		err := rows.Scan(
			&d.ID, &d.CourseID, &d.ReporterID, &d.CourseOwnerID, &d.Reason, &d.Status, &d.Resolution, &d.CreatedAt,
			&d.CourseName,
		)
		if err != nil {
			return nil, 0, err
		}
		reports = append(reports, &d)
	}

	return reports, total, rows.Err()
}

// ResolveReportIfOpen closes an OPEN report, recording the resolution.
// A report that is already closed stays untouched and the caller gets
// apperrors.ErrReportAlreadyClosed.
func (r *ReportRepository) ResolveReportIfOpen(ctx context.Context, id int64, status models.ReportStatus, resolution *string) (*models.Report, error) {
	row := r.DB.QueryRow(ctx,
		`UPDATE reports SET status = $2, resolution = $3
		 WHERE id = $1 AND status = 'OPEN'
		 RETURNING id, course_id, reporter_id, course_owner_id, reason, status, resolution, created_at`,
		id, status, resolution,
	)

	var report models.Report
	err := row.Scan(
		&report.ID, &report.CourseID, &report.ReporterID, &report.CourseOwnerID,
		&report.Reason, &report.Status, &report.Resolution, &report.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReportAlreadyClosed
		}
		return nil, err
	}

	return &report, nil
}
