package main

import (
	"os"

	"github.com/oguzk/tutorlink/internal/pkg/logger"
	"github.com/oguzk/tutorlink/internal/server"
)

// @title           TutorLink API
// @version         1.0
// @description     REST API for the TutorLink tutoring marketplace: course catalog, enrollment, class scheduling between students and tutors, ratings and moderation.

// @contact.name   TutorLink Team
// @contact.email  support@tutorlink.app

// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
