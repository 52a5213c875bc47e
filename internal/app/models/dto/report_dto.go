package dto

import (
	"time"

	"github.com/oguzk/tutorlink/internal/app/models"
)

// CreateReportRequest flags a course for admin review
type CreateReportRequest struct {
	Reason string `json:"reason" binding:"required,min=5"`
}

// ResolveReportRequest closes a report as resolved or dismissed
type ResolveReportRequest struct {
	Status     string `json:"status" binding:"required,oneof=RESOLVED DISMISSED"`
	Resolution string `json:"resolution,omitempty"`
}

// ReportFilterRequest carries admin report list filters
type ReportFilterRequest struct {
	Status   *string `form:"status" binding:"omitempty,oneof=OPEN RESOLVED DISMISSED"`
	Page     int     `form:"page,default=1"`
	PageSize int     `form:"pageSize,default=10"`
}

// ReportResponse represents a report returned by the API
type ReportResponse struct {
	ID            int64               `json:"id"`
	CourseID      int64               `json:"courseId"`
	CourseName    string              `json:"courseName,omitempty"`
	ReporterID    int64               `json:"reporterId"`
	CourseOwnerID int64               `json:"courseOwnerId"`
	Reason        string              `json:"reason"`
	Status        models.ReportStatus `json:"status"`
	Resolution    *string             `json:"resolution,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// ReportListResponse is a paginated list of reports
type ReportListResponse struct {
	Reports        []ReportResponse `json:"reports"`
	PaginationInfo PaginationInfo   `json:"pagination"`
}
