package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/eduadmin/enroll/internal/pkg/logger"
	"github.com/eduadmin/enroll/internal/server"
)

// @title Enrollment API
// @version 1.0
// @description Backend for the tutoring enrollment flow: registration wizard, phone verification and course checkout.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// A .env file is a development convenience; its absence is fine.
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
