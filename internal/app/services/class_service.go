package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/oguzk/tutorlink/internal/app/auth"
	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/app/repositories"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
	"github.com/oguzk/tutorlink/internal/pkg/helpers"
	"github.com/oguzk/tutorlink/internal/pkg/logger"
	"github.com/oguzk/tutorlink/internal/pkg/validation"
)

// DefaultClassDurationMinutes is used when a tutor accepts a request
// without specifying how long the class will run.
const DefaultClassDurationMinutes = 60

// ClassService defines the interface for the class request lifecycle
type ClassService interface {
	RequestClass(ctx context.Context, studentID int64, req *dto.CreateClassRequest) (*dto.ClassResponse, error)
	RespondToRequest(ctx context.Context, tutorID, classID int64, req *dto.RespondClassRequest) (*dto.ClassResponse, error)
	CreateGroupClass(ctx context.Context, tutorID, courseID int64, req *dto.CreateGroupClassRequest) (*dto.ClassResponse, error)
	GetClass(ctx context.Context, userID int64, role models.RoleType, classID int64) (*dto.ClassResponse, error)
	GetSchedule(ctx context.Context, userID int64, role models.RoleType) (*dto.ScheduleResponse, error)
	ListPendingRequests(ctx context.Context, tutorID int64) (*dto.ScheduleResponse, error)
	ListStudentRequests(ctx context.Context, studentID int64) (*dto.ScheduleResponse, error)
	ListGroupClasses(ctx context.Context, courseID int64) (*dto.ScheduleResponse, error)
}

// classServiceImpl implements ClassService
type classServiceImpl struct {
	classRepo    ClassStore
	courseRepo   CourseMembershipStore
	authzService *auth.AuthorizationService
}

// NewClassService creates a new ClassService
func NewClassService(classRepo ClassStore, courseRepo CourseMembershipStore, authzService *auth.AuthorizationService) ClassService {
	return &classServiceImpl{
		classRepo:    classRepo,
		courseRepo:   courseRepo,
		authzService: authzService,
	}
}

// RequestClass creates a pending individual class request from a student.
// The course must exist, the target tutor must be an approved tutor assigned
// to that course, the student must be enrolled, and the requested time must
// lie in the future. The request starts in PENDING and carries no meeting
// link until the tutor accepts it.
func (s *classServiceImpl) RequestClass(ctx context.Context, studentID int64, req *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	if _, err := s.authzService.ValidateCourseExists(ctx, req.CourseID); err != nil {
		return nil, err
	}

	if _, err := s.authzService.ValidateTutor(ctx, req.TutorID); err != nil {
		return nil, err
	}
	if _, err := s.authzService.ValidateCourseTutor(ctx, req.CourseID, req.TutorID); err != nil {
		return nil, err
	}

	if _, err := s.authzService.ValidateEnrollment(ctx, req.CourseID, studentID); err != nil {
		return nil, err
	}

	if !req.Time.After(time.Now()) {
		return nil, apperrors.ErrClassTimeInPast
	}

	scheduledAt := req.Time.UTC()
	class := &models.Class{
		CourseID:    req.CourseID,
		TutorID:     req.TutorID,
		StudentID:   &studentID,
		Type:        models.ClassTypeIndividual,
		Status:      models.ClassStatusPending,
		ScheduledAt: &scheduledAt,
	}

	created, err := s.classRepo.CreateClass(ctx, class)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", req.CourseID).Int64("studentID", studentID).Msg("Failed to create class request")
		return nil, fmt.Errorf("error creating class request: %w", err)
	}

	resp := classToResponse(created)
	return &resp, nil
}

// RespondToRequest resolves a pending request as the owning tutor.
// The checks run in a fixed order so callers get stable answers: a missing
// class is not-found, someone else's class is forbidden, an already resolved
// class is a conflict, and only then is the payload itself validated.
// The final state change is a conditional update keyed on PENDING, so of two
// concurrent responses exactly one wins and the other sees a conflict.
func (s *classServiceImpl) RespondToRequest(ctx context.Context, tutorID, classID int64, req *dto.RespondClassRequest) (*dto.ClassResponse, error) {
	class, err := s.classRepo.GetClassByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	if class.TutorID != tutorID {
		return nil, apperrors.ErrPermissionDenied
	}

	if class.Status.IsTerminal() {
		return nil, apperrors.ErrClassAlreadyFinal
	}

	status := models.ClassStatus(req.Status)
	if status != models.ClassStatusAccepted && status != models.ClassStatusRejected {
		return nil, apperrors.ErrInvalidClassStatus
	}

	var classLink *string
	var duration *int
	if status == models.ClassStatusAccepted {
		if !validation.IsValidMeetingLink(req.ClassLink) {
			return nil, apperrors.ErrClassLinkRequired
		}
		link := req.ClassLink
		classLink = &link

		minutes := req.Duration
		if minutes == 0 {
			minutes = DefaultClassDurationMinutes
		}
		duration = &minutes
	}

	resolved, err := s.classRepo.ResolveClassIfPending(ctx, classID, status, classLink, duration)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("classID", classID).
		Int64("tutorID", tutorID).
		Str("status", string(status)).
		Msg("Class request resolved")

	resp := classToResponse(resolved)
	return &resp, nil
}

// CreateGroupClass creates a tutor-initiated group class on a course.
// Group classes skip the request handshake entirely: they are born ACCEPTED,
// carry their meeting link from the start, and have no owning student.
func (s *classServiceImpl) CreateGroupClass(ctx context.Context, tutorID, courseID int64, req *dto.CreateGroupClassRequest) (*dto.ClassResponse, error) {
	if _, err := s.authzService.ValidateCourseTutor(ctx, courseID, tutorID); err != nil {
		return nil, err
	}

	if !req.Time.After(time.Now()) {
		return nil, apperrors.ErrClassTimeInPast
	}
	if !validation.IsValidMeetingLink(req.ClassLink) {
		return nil, apperrors.ErrClassLinkRequired
	}

	scheduledAt := req.Time.UTC()
	link := req.ClassLink
	duration := req.Duration
	class := &models.Class{
		CourseID:        courseID,
		TutorID:         tutorID,
		Type:            models.ClassTypeGroup,
		Status:          models.ClassStatusAccepted,
		ScheduledAt:     &scheduledAt,
		DurationMinutes: &duration,
		ClassLink:       &link,
	}

	created, err := s.classRepo.CreateClass(ctx, class)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Int64("tutorID", tutorID).Msg("Failed to create group class")
		return nil, fmt.Errorf("error creating group class: %w", err)
	}

	resp := classToResponse(created)
	return &resp, nil
}

// GetClass returns one class. Participants and admins only; the meeting
// link never leaves the participant circle.
func (s *classServiceImpl) GetClass(ctx context.Context, userID int64, role models.RoleType, classID int64) (*dto.ClassResponse, error) {
	class, err := s.classRepo.GetClassByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	if role != models.RoleAdmin && !class.IsParticipant(userID) {
		return nil, apperrors.ErrPermissionDenied
	}

	resp := classToResponse(class)
	return &resp, nil
}

// GetSchedule builds the calendar projection for one user: their accepted
// individual classes plus the group classes of every course they are
// enrolled in (students) or teach (tutors), ordered by time. Pending and
// rejected requests never appear here.
func (s *classServiceImpl) GetSchedule(ctx context.Context, userID int64, role models.RoleType) (*dto.ScheduleResponse, error) {
	individual, err := s.classRepo.AcceptedClassesForParticipant(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting accepted classes: %w", err)
	}

	var courseIDs []int64
	switch role {
	case models.RoleTutor:
		courseIDs, err = s.courseRepo.TaughtCourseIDs(ctx, userID)
	default:
		courseIDs, err = s.courseRepo.EnrolledCourseIDs(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("error getting course memberships: %w", err)
	}

	var group []*repositories.ClassDetails
	if len(courseIDs) > 0 {
		group, err = s.classRepo.GroupClassesForCourses(ctx, courseIDs)
		if err != nil {
			return nil, fmt.Errorf("error getting group classes: %w", err)
		}
	}

	classes := make([]dto.ClassResponse, 0, len(individual)+len(group))
	for _, d := range individual {
		classes = append(classes, classDetailsToResponse(d))
	}
	for _, d := range group {
		classes = append(classes, classDetailsToResponse(d))
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].ScheduledAt.Before(classes[j].ScheduledAt)
	})

	return &dto.ScheduleResponse{Classes: classes}, nil
}

// ListPendingRequests returns the open requests waiting on a tutor
func (s *classServiceImpl) ListPendingRequests(ctx context.Context, tutorID int64) (*dto.ScheduleResponse, error) {
	details, err := s.classRepo.PendingRequestsForTutor(ctx, tutorID)
	if err != nil {
		return nil, fmt.Errorf("error getting pending requests: %w", err)
	}
	return detailsToSchedule(details), nil
}

// ListStudentRequests returns every request a student has made, in any state
func (s *classServiceImpl) ListStudentRequests(ctx context.Context, studentID int64) (*dto.ScheduleResponse, error) {
	details, err := s.classRepo.RequestsForStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error getting student requests: %w", err)
	}
	return detailsToSchedule(details), nil
}

// ListGroupClasses returns the group classes scheduled on a course
func (s *classServiceImpl) ListGroupClasses(ctx context.Context, courseID int64) (*dto.ScheduleResponse, error) {
	if _, err := s.authzService.ValidateCourseExists(ctx, courseID); err != nil {
		return nil, err
	}

	details, err := s.classRepo.GroupClassesForCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error getting group classes: %w", err)
	}
	return detailsToSchedule(details), nil
}

func detailsToSchedule(details []*repositories.ClassDetails) *dto.ScheduleResponse {
	classes := make([]dto.ClassResponse, 0, len(details))
	for _, d := range details {
		classes = append(classes, classDetailsToResponse(d))
	}
	return &dto.ScheduleResponse{Classes: classes}
}

func classToResponse(class *models.Class) dto.ClassResponse {
	return dto.ClassResponse{
		ID:              class.ID,
		CourseID:        class.CourseID,
		TutorID:         class.TutorID,
		StudentID:       class.StudentID,
		Type:            class.Type,
		Status:          class.Status,
		ScheduledAt:     helpers.SafeTime(class.ScheduledAt),
		DurationMinutes: class.DurationMinutes,
		ClassLink:       class.ClassLink,
		CreatedAt:       class.CreatedAt,
	}
}

func classDetailsToResponse(d *repositories.ClassDetails) dto.ClassResponse {
	resp := classToResponse(&d.Class)
	resp.CourseName = d.CourseName
	resp.TutorName = d.TutorName
	if d.StudentName != nil {
		resp.StudentName = *d.StudentName
	}
	return resp
}
