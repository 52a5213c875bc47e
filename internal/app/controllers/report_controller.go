package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/app/services"
	"github.com/oguzk/tutorlink/internal/middleware"
)

// ReportController handles course report operations
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// ReportCourse flags a course for admin review
// @Summary Report a course
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Param request body dto.CreateReportRequest true "Report payload"
// @Success 201 {object} dto.APIResponse{data=dto.ReportResponse} "Report filed"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/reports [post]
func (c *ReportController) ReportCourse(ctx *gin.Context) {
	reporterID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.reportService.ReportCourse(ctx, reporterID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// ListReports returns one admin page of reports
// @Summary List reports
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (OPEN, RESOLVED, DISMISSED)"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10)"
// @Success 200 {object} dto.APIResponse{data=dto.ReportListResponse} "Reports"
// @Router /admin/reports [get]
func (c *ReportController) ListReports(ctx *gin.Context) {
	var filter dto.ReportFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.reportService.ListReports(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetReport returns one report
// @Summary Get a report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param reportId path int true "Report ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReportResponse} "Report"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Router /admin/reports/{reportId} [get]
func (c *ReportController) GetReport(ctx *gin.Context) {
	reportID, ok := parseIDParam(ctx, "reportId")
	if !ok {
		return
	}

	response, err := c.reportService.GetReport(ctx, reportID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// ResolveReport closes an open report
// @Summary Resolve a report
// @Description Closes an open report as resolved or dismissed. Reports already closed stay unchanged and yield a conflict.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reportId path int true "Report ID"
// @Param request body dto.ResolveReportRequest true "Resolution payload"
// @Success 200 {object} dto.APIResponse{data=dto.ReportResponse} "Report closed"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 409 {object} dto.ErrorResponse "Report already closed"
// @Router /admin/reports/{reportId}/resolve [patch]
func (c *ReportController) ResolveReport(ctx *gin.Context) {
	reportID, ok := parseIDParam(ctx, "reportId")
	if !ok {
		return
	}

	var req dto.ResolveReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.reportService.ResolveReport(ctx, reportID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
