package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/oguzk/tutorlink/internal/app/auth"
	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/app/repositories"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
	"github.com/oguzk/tutorlink/internal/pkg/helpers"
	"github.com/oguzk/tutorlink/internal/pkg/logger"
)

// CourseService defines the interface for catalog operations
type CourseService interface {
	CreateCourse(ctx context.Context, tutorID int64, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetCourse(ctx context.Context, userID int64, role models.RoleType, courseID int64) (*dto.CourseResponse, error)
	ListCourses(ctx context.Context, role models.RoleType, filter *dto.CourseFilterRequest) (*dto.CourseListResponse, error)
	UpdateCourse(ctx context.Context, tutorID, courseID int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	PublishCourse(ctx context.Context, tutorID, courseID int64) (*dto.CourseResponse, error)
	Enroll(ctx context.Context, studentID, courseID int64) error
	AddTutor(ctx context.Context, tutorID, courseID, newTutorID int64) error
	AttachSection(ctx context.Context, tutorID, courseID int64, req *dto.AttachSectionRequest) error
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error)
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseRepo   *repositories.CourseRepository
	categoryRepo *repositories.CategoryRepository
	sectionRepo  *repositories.SectionRepository
	authzService *auth.AuthorizationService
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	categoryRepo *repositories.CategoryRepository,
	sectionRepo *repositories.SectionRepository,
	authzService *auth.AuthorizationService,
) CourseService {
	return &courseServiceImpl{
		courseRepo:   courseRepo,
		categoryRepo: categoryRepo,
		sectionRepo:  sectionRepo,
		authzService: authzService,
	}
}

// CreateCourse creates a draft course owned by the creating tutor
func (s *courseServiceImpl) CreateCourse(ctx context.Context, tutorID int64, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if _, err := s.authzService.ValidateTutor(ctx, tutorID); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.GetCategoryByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	course := &models.Course{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Status:      models.CourseStatusDraft,
		Tags:        req.Tags,
		CreatedBy:   tutorID,
	}

	courseID, err := s.courseRepo.CreateCourse(ctx, course)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseAlreadyExists) {
			return nil, apperrors.ErrCourseAlreadyExists
		}
		return nil, fmt.Errorf("course creation error: %w", err)
	}

	logger.Info().Int64("courseID", courseID).Int64("tutorID", tutorID).Msg("Course created")

	return s.courseResponse(ctx, courseID, true)
}

// GetCourse returns one course with its tutors and sections. Draft courses
// are visible only to their tutors and admins.
func (s *courseServiceImpl) GetCourse(ctx context.Context, userID int64, role models.RoleType, courseID int64) (*dto.CourseResponse, error) {
	details, err := s.courseRepo.GetCourseDetails(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if details.Status != models.CourseStatusPublished && role != models.RoleAdmin {
		teaches, err := s.courseRepo.IsCourseTutor(ctx, courseID, userID)
		if err != nil {
			return nil, fmt.Errorf("error checking course tutor: %w", err)
		}
		if !teaches {
			return nil, apperrors.ErrCourseNotFound
		}
	}

	return s.detailsToResponse(ctx, details, true)
}

// ListCourses returns a filtered catalog page. Everyone except admins sees
// published courses only.
func (s *courseServiceImpl) ListCourses(ctx context.Context, role models.RoleType, filter *dto.CourseFilterRequest) (*dto.CourseListResponse, error) {
	repoFilter := repositories.CourseFilter{
		CategoryID:    filter.CategoryID,
		Tag:           filter.Tag,
		Search:        filter.Search,
		PublishedOnly: role != models.RoleAdmin,
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	details, total, err := s.courseRepo.GetAllCourses(ctx, repoFilter, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	courses := make([]dto.CourseResponse, 0, len(details))
	for _, d := range details {
		resp, err := s.detailsToResponse(ctx, d, false)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *resp)
	}

	return &dto.CourseListResponse{
		Courses:        courses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, limit),
	}, nil
}

// UpdateCourse updates a course's catalog fields as one of its tutors
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, tutorID, courseID int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.authzService.ValidateCourseTutor(ctx, courseID, tutorID)
	if err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.GetCategoryByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	course.Name = req.Name
	course.Description = req.Description
	course.CategoryID = req.CategoryID
	course.Tags = req.Tags

	if err := s.courseRepo.UpdateCourse(ctx, course); err != nil {
		if errors.Is(err, apperrors.ErrCourseAlreadyExists) {
			return nil, apperrors.ErrCourseAlreadyExists
		}
		return nil, fmt.Errorf("course update error: %w", err)
	}

	return s.courseResponse(ctx, courseID, true)
}

// PublishCourse moves a draft course into the public catalog. A course
// without at least one content section stays a draft.
func (s *courseServiceImpl) PublishCourse(ctx context.Context, tutorID, courseID int64) (*dto.CourseResponse, error) {
	if _, err := s.authzService.ValidateCourseTutor(ctx, courseID, tutorID); err != nil {
		return nil, err
	}

	count, err := s.courseRepo.SectionCount(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error counting sections: %w", err)
	}
	if count == 0 {
		return nil, apperrors.ErrCourseHasNoContent
	}

	if err := s.courseRepo.SetCourseStatus(ctx, courseID, models.CourseStatusPublished); err != nil {
		return nil, fmt.Errorf("error publishing course: %w", err)
	}

	logger.Info().Int64("courseID", courseID).Int64("tutorID", tutorID).Msg("Course published")

	return s.courseResponse(ctx, courseID, true)
}

// Enroll adds a student to a published course. Enrolling twice is a no-op.
func (s *courseServiceImpl) Enroll(ctx context.Context, studentID, courseID int64) error {
	course, err := s.authzService.ValidateCourseExists(ctx, courseID)
	if err != nil {
		return err
	}
	if course.Status != models.CourseStatusPublished {
		return apperrors.ErrCourseNotPublished
	}

	if err := s.courseRepo.EnrollStudent(ctx, courseID, studentID); err != nil {
		return fmt.Errorf("enrollment error: %w", err)
	}

	logger.Info().Int64("courseID", courseID).Int64("studentID", studentID).Msg("Student enrolled")
	return nil
}

// AddTutor assigns another approved tutor to a course. Assigning a tutor
// who already teaches the course is a no-op.
func (s *courseServiceImpl) AddTutor(ctx context.Context, tutorID, courseID, newTutorID int64) error {
	if _, err := s.authzService.ValidateCourseTutor(ctx, courseID, tutorID); err != nil {
		return err
	}

	if _, err := s.authzService.ValidateTutor(ctx, newTutorID); err != nil {
		return err
	}

	if err := s.courseRepo.AddTutor(ctx, courseID, newTutorID); err != nil {
		return fmt.Errorf("tutor assignment error: %w", err)
	}

	logger.Info().Int64("courseID", courseID).Int64("tutorID", newTutorID).Msg("Tutor assigned to course")
	return nil
}

// AttachSection attaches one of the tutor's sections to a course at a
// position. Attaching an already attached section moves it instead.
func (s *courseServiceImpl) AttachSection(ctx context.Context, tutorID, courseID int64, req *dto.AttachSectionRequest) error {
	if _, err := s.authzService.ValidateCourseTutor(ctx, courseID, tutorID); err != nil {
		return err
	}

	section, err := s.sectionRepo.GetSectionByID(ctx, req.SectionID)
	if err != nil {
		return err
	}
	if section.TutorID != tutorID {
		return apperrors.ErrPermissionDenied
	}

	if err := s.courseRepo.AttachSection(ctx, courseID, req.SectionID, req.Position); err != nil {
		return fmt.Errorf("section attach error: %w", err)
	}

	return nil
}

// CreateCategory creates a course category
func (s *courseServiceImpl) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	category := &models.Category{Name: req.Name}
	id, err := s.categoryRepo.CreateCategory(ctx, category)
	if err != nil {
		if errors.Is(err, apperrors.ErrCategoryAlreadyExists) {
			return nil, apperrors.ErrCategoryAlreadyExists
		}
		return nil, fmt.Errorf("category creation error: %w", err)
	}

	return &dto.CategoryResponse{ID: id, Name: req.Name}, nil
}

// ListCategories returns all categories
func (s *courseServiceImpl) ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.GetAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}

	responses := make([]*dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, &dto.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return responses, nil
}

// courseResponse loads course details and converts them
func (s *courseServiceImpl) courseResponse(ctx context.Context, courseID int64, includeRelations bool) (*dto.CourseResponse, error) {
	details, err := s.courseRepo.GetCourseDetails(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.detailsToResponse(ctx, details, includeRelations)
}

// detailsToResponse converts course details, optionally loading tutors and
// sections for single-course views
func (s *courseServiceImpl) detailsToResponse(ctx context.Context, details *repositories.CourseDetails, includeRelations bool) (*dto.CourseResponse, error) {
	resp := &dto.CourseResponse{
		ID:            details.ID,
		Name:          details.Name,
		Description:   details.Description,
		CategoryID:    details.CategoryID,
		CategoryName:  details.CategoryName,
		Status:        details.Status,
		Tags:          details.Tags,
		EnrolledCount: details.EnrolledCount,
		AverageRating: details.AverageRating,
		RatingCount:   details.RatingCount,
		CreatedAt:     details.CreatedAt,
	}

	if !includeRelations {
		return resp, nil
	}

	tutors, err := s.courseRepo.GetCourseTutors(ctx, details.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading course tutors: %w", err)
	}
	for _, t := range tutors {
		resp.Tutors = append(resp.Tutors, dto.NewUserResponse(t))
	}

	sections, positions, err := s.courseRepo.GetCourseSections(ctx, details.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading course sections: %w", err)
	}
	for i, sec := range sections {
		resp.Sections = append(resp.Sections, &dto.SectionResponse{
			ID:        sec.ID,
			TutorID:   sec.TutorID,
			Title:     sec.Title,
			VideoURL:  sec.VideoURL,
			Position:  positions[i],
			CreatedAt: sec.CreatedAt,
		})
	}

	return resp, nil
}
