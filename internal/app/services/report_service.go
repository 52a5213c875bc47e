package services

import (
	"context"
	"fmt"

	"github.com/oguzk/tutorlink/internal/app/auth"
	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/app/repositories"
	"github.com/oguzk/tutorlink/internal/pkg/helpers"
	"github.com/oguzk/tutorlink/internal/pkg/logger"
)

// ReportService defines the interface for course report handling
type ReportService interface {
	ReportCourse(ctx context.Context, reporterID, courseID int64, req *dto.CreateReportRequest) (*dto.ReportResponse, error)
	ListReports(ctx context.Context, filter *dto.ReportFilterRequest) (*dto.ReportListResponse, error)
	GetReport(ctx context.Context, id int64) (*dto.ReportResponse, error)
	ResolveReport(ctx context.Context, id int64, req *dto.ResolveReportRequest) (*dto.ReportResponse, error)
}

// reportServiceImpl implements ReportService
type reportServiceImpl struct {
	reportRepo   *repositories.ReportRepository
	authzService *auth.AuthorizationService
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo *repositories.ReportRepository, authzService *auth.AuthorizationService) ReportService {
	return &reportServiceImpl{
		reportRepo:   reportRepo,
		authzService: authzService,
	}
}

// ReportCourse flags a course for admin review. The course's creator is
// recorded on the report so admins see who is being reported.
func (s *reportServiceImpl) ReportCourse(ctx context.Context, reporterID, courseID int64, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	course, err := s.authzService.ValidateCourseExists(ctx, courseID)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		CourseID:      courseID,
		ReporterID:    reporterID,
		CourseOwnerID: course.CreatedBy,
		Reason:        req.Reason,
		Status:        models.ReportStatusOpen,
	}

	id, err := s.reportRepo.CreateReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("report creation error: %w", err)
	}

	logger.Info().Int64("reportID", id).Int64("courseID", courseID).Int64("reporterID", reporterID).Msg("Course reported")

	return s.GetReport(ctx, id)
}

// ListReports returns one admin page of reports, optionally by status
func (s *reportServiceImpl) ListReports(ctx context.Context, filter *dto.ReportFilterRequest) (*dto.ReportListResponse, error) {
	var status *models.ReportStatus
	if filter.Status != nil {
		st := models.ReportStatus(*filter.Status)
		status = &st
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	details, total, err := s.reportRepo.GetAllReports(ctx, status, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing reports: %w", err)
	}

	reports := make([]dto.ReportResponse, 0, len(details))
	for _, d := range details {
		resp := reportToResponse(&d.Report)
		resp.CourseName = d.CourseName
		reports = append(reports, *resp)
	}

	return &dto.ReportListResponse{
		Reports:        reports,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, limit),
	}, nil
}

// GetReport returns one report
func (s *reportServiceImpl) GetReport(ctx context.Context, id int64) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.GetReportByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return reportToResponse(report), nil
}

// ResolveReport closes an open report as resolved or dismissed. A report
// already closed by another admin stays as it is.
func (s *reportServiceImpl) ResolveReport(ctx context.Context, id int64, req *dto.ResolveReportRequest) (*dto.ReportResponse, error) {
	// existence first, so a missing report reads as not-found instead
	// of already-closed
	if _, err := s.reportRepo.GetReportByID(ctx, id); err != nil {
		return nil, err
	}

	var resolution *string
	if req.Resolution != "" {
		r := req.Resolution
		resolution = &r
	}

	report, err := s.reportRepo.ResolveReportIfOpen(ctx, id, models.ReportStatus(req.Status), resolution)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("reportID", id).Str("status", req.Status).Msg("Report closed")

	return reportToResponse(report), nil
}

func reportToResponse(report *models.Report) *dto.ReportResponse {
	return &dto.ReportResponse{
		ID:            report.ID,
		CourseID:      report.CourseID,
		ReporterID:    report.ReporterID,
		CourseOwnerID: report.CourseOwnerID,
		Reason:        report.Reason,
		Status:        report.Status,
		Resolution:    report.Resolution,
		CreatedAt:     report.CreatedAt,
	}
}
