package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	appAuth "github.com/oguzk/tutorlink/internal/app/auth"
	appControllers "github.com/oguzk/tutorlink/internal/app/controllers"
	appRepos "github.com/oguzk/tutorlink/internal/app/repositories"
	appRoutes "github.com/oguzk/tutorlink/internal/app/routes"
	appServices "github.com/oguzk/tutorlink/internal/app/services"
	"github.com/oguzk/tutorlink/internal/config"
	"github.com/oguzk/tutorlink/internal/db"
	appMiddleware "github.com/oguzk/tutorlink/internal/middleware"
	pkgAuth "github.com/oguzk/tutorlink/internal/pkg/auth"
	"github.com/oguzk/tutorlink/internal/pkg/helpers"
	"github.com/oguzk/tutorlink/internal/pkg/logger"
	"github.com/oguzk/tutorlink/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService    appServices.AuthService
	CourseService  appServices.CourseService
	SectionService appServices.SectionService
	ClassService   appServices.ClassService
	RatingService  appServices.RatingService
	ReportService  appServices.ReportService
	UserService    appServices.UserService

	AuthController    *appControllers.AuthController
	CourseController  *appControllers.CourseController
	SectionController *appControllers.SectionController
	ClassController   *appControllers.ClassController
	RatingController  *appControllers.RatingController
	ReportController  *appControllers.ReportController
	AdminController   *appControllers.AdminController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// A .env file next to the binary is applied first, so local development
// does not need exported environment variables.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment from .env file")
	}

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	logger.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	migrator, err := db.NewMigrator(dbPool, cfg.Database.MigrationsDir)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() { _ = migrator.Close() }()

	if err := migrator.Run(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(ctx, dbPool); err != nil {
		// Seeding problems should not keep the service down
		logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.UserRepository,
		deps.Repos.CourseRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.CategoryRepository,
		deps.Repos.SectionRepository,
		deps.AuthzService,
	)
	deps.SectionService = appServices.NewSectionService(deps.Repos.SectionRepository, deps.AuthzService)
	deps.ClassService = appServices.NewClassService(
		deps.Repos.ClassRepository,
		deps.Repos.CourseRepository,
		deps.AuthzService,
	)
	deps.RatingService = appServices.NewRatingService(deps.Repos.RatingRepository, deps.AuthzService)
	deps.ReportService = appServices.NewReportService(deps.Repos.ReportRepository, deps.AuthzService)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.SectionController = appControllers.NewSectionController(deps.SectionService)
	deps.ClassController = appControllers.NewClassController(deps.ClassService)
	deps.RatingController = appControllers.NewRatingController(deps.RatingService)
	deps.ReportController = appControllers.NewReportController(deps.ReportService)
	deps.AdminController = appControllers.NewAdminController(deps.UserService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.SectionController,
		deps.ClassController,
		deps.RatingController,
		deps.ReportController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	return router
}
