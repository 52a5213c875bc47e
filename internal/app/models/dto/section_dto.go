package dto

import "time"

// CreateSectionRequest represents a tutor's new content section.
// Quiz questions are optional; when present, every question must mark at
// least one option correct.
type CreateSectionRequest struct {
	Title     string                `json:"title" binding:"required,min=2,max=200"`
	VideoURL  string                `json:"videoUrl" binding:"required,url"`
	Questions []QuizQuestionRequest `json:"questions,omitempty" binding:"omitempty,dive"`
}

// QuizQuestionRequest is one question in a section creation payload
type QuizQuestionRequest struct {
	Prompt  string              `json:"prompt" binding:"required"`
	Options []QuizOptionRequest `json:"options" binding:"required,min=2,dive"`
}

// QuizOptionRequest is one option of a quiz question
type QuizOptionRequest struct {
	Body      string `json:"body" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

// SectionResponse represents section information returned by the API
type SectionResponse struct {
	ID        int64                   `json:"id"`
	TutorID   int64                   `json:"tutorId"`
	Title     string                  `json:"title"`
	VideoURL  string                  `json:"videoUrl"`
	Position  int                     `json:"position,omitempty"`
	Questions []*QuizQuestionResponse `json:"questions,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
}

// QuizQuestionResponse represents one quiz question with its options
type QuizQuestionResponse struct {
	ID      int64                 `json:"id"`
	Prompt  string                `json:"prompt"`
	Options []*QuizOptionResponse `json:"options"`
}

// QuizOptionResponse represents one quiz option
type QuizOptionResponse struct {
	ID        int64  `json:"id"`
	Body      string `json:"body"`
	IsCorrect bool   `json:"isCorrect"`
}
