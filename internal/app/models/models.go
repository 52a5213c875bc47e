package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleStudent RoleType = "STUDENT"
	RoleTutor   RoleType = "TUTOR"
)

// CourseStatus represents the publication state of a course
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "DRAFT"
	CourseStatusPublished CourseStatus = "PUBLISHED"
)

// ClassStatus represents the lifecycle state of a class request.
// PENDING is the only non-terminal state; once ACCEPTED or REJECTED a
// class never transitions again.
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "PENDING"
	ClassStatusAccepted ClassStatus = "ACCEPTED"
	ClassStatusRejected ClassStatus = "REJECTED"
)

// IsTerminal reports whether the status admits no further transitions.
func (s ClassStatus) IsTerminal() bool {
	return s == ClassStatusAccepted || s == ClassStatusRejected
}

// ClassType distinguishes one-on-one sessions from course-wide group sessions
type ClassType string

const (
	ClassTypeIndividual ClassType = "INDIVIDUAL"
	ClassTypeGroup      ClassType = "GROUP"
)

// ReportStatus represents the handling state of a flagged course
type ReportStatus string

const (
	ReportStatusOpen      ReportStatus = "OPEN"
	ReportStatusResolved  ReportStatus = "RESOLVED"
	ReportStatusDismissed ReportStatus = "DISMISSED"
)
