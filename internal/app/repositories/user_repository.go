package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
	"github.com/oguzk/tutorlink/internal/pkg/dberrors"
	"github.com/oguzk/tutorlink/internal/pkg/logger"
)

// userColumns is the canonical column list for scanning users
var userColumns = []string{
	"id", "email", "password", "first_name", "last_name", "role_type",
	"bio", "resume_url", "is_active", "is_approved",
	"created_at", "updated_at", "last_login_at",
}

// UserRepository handles database operations for users
type UserRepository struct {
	DB *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.RoleType,
		&u.Bio, &u.ResumeURL, &u.IsActive, &u.IsApproved,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user and returns its ID.
// Returns apperrors.ErrEmailAlreadyExists when the (email, role) pair is taken.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sqlStr, args, err := squirrel.Insert("users").
		Columns("email", "password", "first_name", "last_name", "role_type", "bio", "resume_url", "is_active", "is_approved").
		Values(user.Email, user.Password, user.FirstName, user.LastName, user.RoleType, user.Bio, user.ResumeURL, user.IsActive, user.IsApproved).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, err
	}

	var id int64
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_role_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, err
	}

	return id, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sqlStr, args, err := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	return scanUser(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetUserByEmailAndRole retrieves a user by email and account type.
// Email is only unique per role, so lookups always carry both.
func (r *UserRepository) GetUserByEmailAndRole(ctx context.Context, email string, role models.RoleType) (*models.User, error) {
	sqlStr, args, err := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email, "role_type": role}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	return scanUser(r.DB.QueryRow(ctx, sqlStr, args...))
}

// UpdateProfile updates a user's mutable profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, bio, resumeURL *string) error {
	sqlStr, args, err := squirrel.Update("users").
		Set("first_name", firstName).
		Set("last_name", lastName).
		Set("bio", bio).
		Set("resume_url", resumeURL).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating user profile")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	sqlStr, args, err := squirrel.Update("users").
		Set("password", hashedPassword).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin stamps the user's last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	sqlStr, args, err := squirrel.Update("users").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.DB.Exec(ctx, sqlStr, args...)
	return err
}

// SetApproval toggles a user's approval flag (tutor onboarding)
func (r *UserRepository) SetApproval(ctx context.Context, userID int64, approved bool) error {
	return r.setFlag(ctx, userID, "is_approved", approved)
}

// SetActive toggles a user's active flag
func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	return r.setFlag(ctx, userID, "is_active", active)
}

func (r *UserRepository) setFlag(ctx context.Context, userID int64, column string, value bool) error {
	sqlStr, args, err := squirrel.Update("users").
		Set(column, value).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Str("column", column).Msg("Error updating user flag")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetAllUsers retrieves a paginated list of users, optionally filtered by role
func (r *UserRepository) GetAllUsers(ctx context.Context, role *models.RoleType, offset uint64, limit int) ([]*models.User, int64, error) {
	builder := squirrel.Select(userColumns...).
		From("users").
		PlaceholderFormat(squirrel.Dollar)
	countBuilder := squirrel.Select("count(*)").
		From("users").
		PlaceholderFormat(squirrel.Dollar)

	if role != nil {
		builder = builder.Where(squirrel.Eq{"role_type": *role})
		countBuilder = countBuilder.Where(squirrel.Eq{"role_type": *role})
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.DB.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sqlStr, args, err := builder.
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}

	return users, total, rows.Err()
}
