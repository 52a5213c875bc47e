package models

import "time"

// Section is a content unit (video plus optional quiz) authored by a tutor.
// A section may be attached to any number of courses.
type Section struct {
	ID        int64     `json:"id" db:"id"`
	TutorID   int64     `json:"tutorId" db:"tutor_id"`
	Title     string    `json:"title" db:"title"`
	VideoURL  string    `json:"videoUrl" db:"video_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Questions []*QuizQuestion `json:"questions,omitempty"`
}

// QuizQuestion is one question of a section's quiz, with ordered options.
// Every question must carry at least one correct option.
type QuizQuestion struct {
	ID        int64  `json:"id" db:"id"`
	SectionID int64  `json:"sectionId" db:"section_id"`
	Position  int    `json:"position" db:"position"`
	Prompt    string `json:"prompt" db:"prompt"`

	Options []*QuizOption `json:"options,omitempty"`
}

// QuizOption is one answer option of a quiz question.
type QuizOption struct {
	ID         int64  `json:"id" db:"id"`
	QuestionID int64  `json:"questionId" db:"question_id"`
	Position   int    `json:"position" db:"position"`
	Body       string `json:"body" db:"body"`
	IsCorrect  bool   `json:"isCorrect" db:"is_correct"`
}

// HasCorrectOption reports whether at least one option is marked correct.
func (q *QuizQuestion) HasCorrectOption() bool {
	for _, opt := range q.Options {
		if opt.IsCorrect {
			return true
		}
	}
	return false
}
