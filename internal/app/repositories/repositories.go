package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is a container for all repository instances
type Repositories struct {
	UserRepository     *UserRepository
	TokenRepository    *TokenRepository
	CategoryRepository *CategoryRepository
	CourseRepository   *CourseRepository
	SectionRepository  *SectionRepository
	ClassRepository    *ClassRepository
	RatingRepository   *RatingRepository
	ReportRepository   *ReportRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db),
		TokenRepository:    NewTokenRepository(db),
		CategoryRepository: NewCategoryRepository(db),
		CourseRepository:   NewCourseRepository(db),
		SectionRepository:  NewSectionRepository(db),
		ClassRepository:    NewClassRepository(db),
		RatingRepository:   NewRatingRepository(db),
		ReportRepository:   NewReportRepository(db),
	}
}
