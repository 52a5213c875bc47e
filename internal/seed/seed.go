package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/app/repositories"
	"github.com/oguzk/tutorlink/internal/pkg/apperrors"
	"github.com/oguzk/tutorlink/internal/pkg/auth"
	"github.com/oguzk/tutorlink/internal/pkg/logger"
)

const (
	defaultAdminEmail    = "admin@tutorlink.app"
	defaultAdminPassword = "Admin123!"
)

var defaultCategories = []string{
	"Mathematics",
	"Science",
	"Languages",
	"Programming",
	"Music",
}

// CreateDefaultData ensures the baseline records required by a fresh
// deployment exist: an admin account and the starter course categories.
// Existing records are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool) error {
	repos := repositories.NewRepositories(dbPool)

	var errs []error
	if err := createDefaultAdmin(ctx, repos.UserRepository); err != nil {
		errs = append(errs, fmt.Errorf("default admin: %w", err))
	}
	if err := createDefaultCategories(ctx, repos.CategoryRepository); err != nil {
		errs = append(errs, fmt.Errorf("default categories: %w", err))
	}
	return errors.Join(errs...)
}

func createDefaultAdmin(ctx context.Context, userRepo *repositories.UserRepository) error {
	existing, err := userRepo.GetUserByEmailAndRole(ctx, defaultAdminEmail, models.RoleAdmin)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}
	if existing != nil {
		return nil
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	adminID, err := userRepo.CreateUser(ctx, &models.User{
		Email:      defaultAdminEmail,
		Password:   hashed,
		FirstName:  "System",
		LastName:   "Admin",
		RoleType:   models.RoleAdmin,
		IsActive:   true,
		IsApproved: true,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	logger.Info().Int64("userID", adminID).Str("email", defaultAdminEmail).Msg("Created default admin user")
	return nil
}

func createDefaultCategories(ctx context.Context, categoryRepo *repositories.CategoryRepository) error {
	var errs []error
	for _, name := range defaultCategories {
		_, err := categoryRepo.CreateCategory(ctx, &models.Category{Name: name})
		if err != nil {
			if errors.Is(err, apperrors.ErrCategoryAlreadyExists) {
				continue
			}
			errs = append(errs, fmt.Errorf("category %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
