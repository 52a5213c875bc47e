package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
	"github.com/oguzk/tutorlink/internal/pkg/dberrors"
)

// CategoryRepository handles database operations for course categories
type CategoryRepository struct {
	DB *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// CreateCategory inserts a new category and returns its ID
func (r *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) (int64, error) {
	sqlStr, args, err := squirrel.Insert("categories").
		Columns("name").
		Values(category.Name).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "categories_name_key") {
			return 0, apperrors.ErrCategoryAlreadyExists
		}
		return 0, err
	}

	return id, nil
}

// GetCategoryByID retrieves a category by ID
func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	sqlStr, args, err := squirrel.Select("id", "name").
		From("categories").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var c models.Category
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}

	return &c, nil
}

// GetAllCategories retrieves all categories ordered by name
func (r *CategoryRepository) GetAllCategories(ctx context.Context) ([]*models.Category, error) {
	sqlStr, args, err := squirrel.Select("id", "name").
		From("categories").
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}
