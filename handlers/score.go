// handlers/score.go
package handlers

import (
	"football-stats-api/middleware"
	"football-stats-api/services"

	"github.com/gofiber/fiber/v2"
)

// SetupScoreRoutes registers the companion mini-game surface.
// Registration stays public so new players can sign up; score submission
// goes through the same token gate as the football mutations.
func SetupScoreRoutes(app *fiber.App, scoreService *services.ScoreService, verifier middleware.TokenVerifier) {
	auth := middleware.TokenAuth(verifier)

	app.Post("/users", scoreService.RegisterUser)
	app.Get("/users/:id", scoreService.GetUserByID)

	app.Get("/scores", scoreService.GetAllScores)
	app.Get("/scores/leaderboard", scoreService.GetLeaderboard)
	app.Post("/scores", auth, scoreService.CreateScore)
}
