package models

import "time"

// Report is a flagged-course record filed by any authenticated user.
type Report struct {
	ID            int64        `json:"id" db:"id"`
	CourseID      int64        `json:"courseId" db:"course_id"`
	ReporterID    int64        `json:"reporterId" db:"reporter_id"`
	CourseOwnerID int64        `json:"courseOwnerId" db:"course_owner_id"`
	Reason        string       `json:"reason" db:"reason"`
	Status        ReportStatus `json:"status" db:"status"`
	Resolution    *string      `json:"resolution,omitempty" db:"resolution"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
}
