package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oguzk/tutorlink/internal/app/controllers"
	"github.com/oguzk/tutorlink/internal/app/models"
	"github.com/oguzk/tutorlink/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	sectionController *controllers.SectionController,
	classController *controllers.ClassController,
	ratingController *controllers.RatingController,
	reportController *controllers.ReportController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	v1.GET("/categories", courseController.ListCategories)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Profile
		profile := authenticated.Group("/auth")
		{
			profile.GET("/profile", authController.GetProfile)
			profile.PUT("/profile", authController.UpdateProfile)
			profile.PUT("/password", authController.ChangePassword)
		}

		// Catalog
		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.GET("/:courseId", courseController.GetCourse)
			courses.GET("/:courseId/ratings", ratingController.ListCourseRatings)
			courses.GET("/:courseId/group-classes", classController.ListGroupClasses)

			// Anyone authenticated can flag a course
			courses.POST("/:courseId/reports", reportController.ReportCourse)

			// Student-only course operations
			coursesStudent := courses.Group("")
			coursesStudent.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
			{
				coursesStudent.POST("/:courseId/enroll", courseController.Enroll)
				coursesStudent.PUT("/:courseId/ratings", ratingController.RateCourse)
			}

			// Tutor-only course operations
			coursesTutor := courses.Group("")
			coursesTutor.Use(authMiddleware.RoleRequired(string(models.RoleTutor)))
			{
				coursesTutor.POST("", courseController.CreateCourse)
				coursesTutor.PUT("/:courseId", courseController.UpdateCourse)
				coursesTutor.POST("/:courseId/publish", courseController.PublishCourse)
				coursesTutor.POST("/:courseId/tutors", courseController.AddTutor)
				coursesTutor.POST("/:courseId/sections", courseController.AttachSection)
				coursesTutor.POST("/:courseId/group-classes", classController.CreateGroupClass)
			}
		}

		// Content sections
		sections := authenticated.Group("/sections")
		{
			sections.GET("/:sectionId", sectionController.GetSection)

			sectionsTutor := sections.Group("")
			sectionsTutor.Use(authMiddleware.RoleRequired(string(models.RoleTutor)))
			{
				sectionsTutor.POST("", sectionController.CreateSection)
			}
		}

		// Class lifecycle
		classes := authenticated.Group("/classes")
		{
			classes.GET("/schedule", classController.GetSchedule)
			classes.GET("/:classId", classController.GetClass)

			classesStudent := classes.Group("")
			classesStudent.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
			{
				classesStudent.POST("/request", classController.RequestClass)
				classesStudent.GET("/requests", classController.ListMyRequests)
			}

			classesTutor := classes.Group("")
			classesTutor.Use(authMiddleware.RoleRequired(string(models.RoleTutor)))
			{
				classesTutor.PATCH("/:classId/respond", classController.RespondToRequest)
				classesTutor.GET("/requests/pending", classController.ListPendingRequests)
			}
		}

		// Admin surface
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			admin.GET("/users", adminController.ListUsers)
			admin.GET("/users/:userId", adminController.GetUser)
			admin.PATCH("/users/:userId/approval", adminController.SetTutorApproval)
			admin.PATCH("/users/:userId/active", adminController.SetUserActive)

			admin.GET("/reports", reportController.ListReports)
			admin.GET("/reports/:reportId", reportController.GetReport)
			admin.PATCH("/reports/:reportId/resolve", reportController.ResolveReport)
		}

		// Category management (admin only)
		categoriesAdmin := authenticated.Group("/categories")
		categoriesAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			categoriesAdmin.POST("", courseController.CreateCategory)
		}
	}
}
