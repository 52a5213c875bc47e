package services

import (
	"context"
	"fmt"

	"github.com/oguzk/tutorlink/internal/app/auth"
	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/app/models/dto"
	"github.com/oguzk/tutorlink/internal/app/repositories"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
	"github.com/oguzk/tutorlink/internal/pkg/logger"
)

// SectionService defines the interface for content section operations
type SectionService interface {
	CreateSection(ctx context.Context, tutorID int64, req *dto.CreateSectionRequest) (*dto.SectionResponse, error)
	GetSection(ctx context.Context, id int64) (*dto.SectionResponse, error)
}

// sectionServiceImpl implements SectionService
type sectionServiceImpl struct {
	sectionRepo  *repositories.SectionRepository
	authzService *auth.AuthorizationService
}

// NewSectionService creates a new SectionService
func NewSectionService(sectionRepo *repositories.SectionRepository, authzService *auth.AuthorizationService) SectionService {
	return &sectionServiceImpl{
		sectionRepo:  sectionRepo,
		authzService: authzService,
	}
}

// CreateSection creates a video section with an optional quiz. A quiz
// question that marks no option as correct is rejected before anything
// is stored.
func (s *sectionServiceImpl) CreateSection(ctx context.Context, tutorID int64, req *dto.CreateSectionRequest) (*dto.SectionResponse, error) {
	if _, err := s.authzService.ValidateTutor(ctx, tutorID); err != nil {
		return nil, err
	}

	section := &models.Section{
		TutorID:  tutorID,
		Title:    req.Title,
		VideoURL: req.VideoURL,
	}
	for qi, q := range req.Questions {
		question := &models.QuizQuestion{
			Position: qi,
			Prompt:   q.Prompt,
		}
		for oi, o := range q.Options {
			question.Options = append(question.Options, &models.QuizOption{
				Position:  oi,
				Body:      o.Body,
				IsCorrect: o.IsCorrect,
			})
		}
		if !question.HasCorrectOption() {
			return nil, apperrors.ErrQuizQuestionInvalid
		}
		section.Questions = append(section.Questions, question)
	}

	sectionID, err := s.sectionRepo.CreateSection(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("section creation error: %w", err)
	}

	logger.Info().Int64("sectionID", sectionID).Int64("tutorID", tutorID).Msg("Section created")

	return s.GetSection(ctx, sectionID)
}

// GetSection returns a section with its quiz questions and options
func (s *sectionServiceImpl) GetSection(ctx context.Context, id int64) (*dto.SectionResponse, error) {
	section, err := s.sectionRepo.GetSectionWithQuiz(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.SectionResponse{
		ID:        section.ID,
		TutorID:   section.TutorID,
		Title:     section.Title,
		VideoURL:  section.VideoURL,
		CreatedAt: section.CreatedAt,
	}
	for _, q := range section.Questions {
		question := &dto.QuizQuestionResponse{
			ID:     q.ID,
			Prompt: q.Prompt,
		}
		for _, o := range q.Options {
			question.Options = append(question.Options, &dto.QuizOptionResponse{
				ID:        o.ID,
				Body:      o.Body,
				IsCorrect: o.IsCorrect,
			})
		}
		resp.Questions = append(resp.Questions, question)
	}

	return resp, nil
}
