package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
)

// SectionRepository handles database operations for sections and their quizzes
type SectionRepository struct {
	DB *pgxpool.Pool
}

// NewSectionRepository creates a new SectionRepository
func NewSectionRepository(db *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{DB: db}
}

// CreateSection inserts a section together with its quiz questions and
// options in one transaction.
func (r *SectionRepository) CreateSection(ctx context.Context, section *models.Section) (int64, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sqlStr, args, err := squirrel.Insert("sections").
		Columns("tutor_id", "title", "video_url").
		Values(section.TutorID, section.Title, section.VideoURL).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var sectionID int64
	if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&sectionID); err != nil {
		return 0, err
	}

	for qi, question := range section.Questions {
		var questionID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO quiz_questions (section_id, position, prompt) VALUES ($1, $2, $3) RETURNING id`,
			sectionID, qi, question.Prompt,
		).Scan(&questionID)
		if err != nil {
			return 0, err
		}

		for oi, option := range question.Options {
			_, err := tx.Exec(ctx,
				`INSERT INTO quiz_options (question_id, position, body, is_correct) VALUES ($1, $2, $3, $4)`,
				questionID, oi, option.Body, option.IsCorrect,
			)
			if err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return sectionID, nil
}

// GetSectionByID retrieves a section without its quiz
func (r *SectionRepository) GetSectionByID(ctx context.Context, id int64) (*models.Section, error) {
	sqlStr, args, err := squirrel.Select("id", "tutor_id", "title", "video_url", "created_at").
		From("sections").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var s models.Section
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(&s.ID, &s.TutorID, &s.Title, &s.VideoURL, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSectionNotFound
		}
		return nil, err
	}

	return &s, nil
}

// GetSectionWithQuiz retrieves a section and its full quiz in question and
// option order.
func (r *SectionRepository) GetSectionWithQuiz(ctx context.Context, id int64) (*models.Section, error) {
	section, err := r.GetSectionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	questions, err := r.getQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	section.Questions = questions

	return section, nil
}

func (r *SectionRepository) getQuiz(ctx context.Context, sectionID int64) ([]*models.QuizQuestion, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, section_id, position, prompt FROM quiz_questions WHERE section_id = $1 ORDER BY position ASC, id ASC`,
		sectionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*models.QuizQuestion
	byID := make(map[int64]*models.QuizQuestion)
	for rows.Next() {
		var q models.QuizQuestion
		if err := rows.Scan(&q.ID, &q.SectionID, &q.Position, &q.Prompt); err != nil {
			return nil, err
		}
		questions = append(questions, &q)
		byID[q.ID] = &q
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(questions) == 0 {
		return questions, nil
	}

	optRows, err := r.DB.Query(ctx,
		`SELECT o.id, o.question_id, o.position, o.body, o.is_correct
		 FROM quiz_options o
		 JOIN quiz_questions q ON o.question_id = q.id
		 WHERE q.section_id = $1
		 ORDER BY o.position ASC, o.id ASC`,
		sectionID,
	)
	if err != nil {
		return nil, err
	}
	defer optRows.Close()

	for optRows.Next() {
		var o models.QuizOption
		if err := optRows.Scan(&o.ID, &o.QuestionID, &o.Position, &o.Body, &o.IsCorrect); err != nil {
			return nil, err
		}
		if q, ok := byID[o.QuestionID]; ok {
			q.Options = append(q.Options, &o)
		}
	}

	return questions, optRows.Err()
}
