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
)

// TokenRepository handles database operations for refresh tokens
type TokenRepository struct {
	DB *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{DB: db}
}

// SaveRefreshToken stores a new refresh token
func (r *TokenRepository) SaveRefreshToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	sqlStr, args, err := squirrel.Insert("refresh_tokens").
		Columns("token", "user_id", "expires_at").
		Values(token, userID, expiresAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.DB.Exec(ctx, sqlStr, args...)
	return err
}

// GetRefreshToken retrieves a refresh token record
func (r *TokenRepository) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	sqlStr, args, err := squirrel.Select("token", "user_id", "expires_at", "revoked", "created_at").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rt models.RefreshToken
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(&rt.Token, &rt.UserID, &rt.ExpiresAt, &rt.Revoked, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, err
	}

	return &rt, nil
}

// RevokeRefreshToken marks a refresh token as revoked
func (r *TokenRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	sqlStr, args, err := squirrel.Update("refresh_tokens").
		Set("revoked", true).
		Where(squirrel.Eq{"token": token}).
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
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// DeleteExpiredTokens removes refresh tokens past their expiry
func (r *TokenRepository) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	sqlStr, args, err := squirrel.Delete("refresh_tokens").
		Where(squirrel.Lt{"expires_at": time.Now()}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.DB.Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
