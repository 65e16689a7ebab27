// handlers/match.go
package handlers

import (
	"football-stats-api/middleware"
	"football-stats-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMatchRoutes(app *fiber.App, competitionService *services.CompetitionService, matchService *services.MatchService, appearanceService *services.AppearanceService, verifier middleware.TokenVerifier) {
	auth := middleware.TokenAuth(verifier)

	app.Get("/competitions", competitionService.GetAllCompetitions)
	app.Get("/competitions/:id", competitionService.GetCompetitionByID)
	app.Post("/competitions", auth, competitionService.CreateCompetition)
	app.Put("/competitions/:id", auth, competitionService.UpdateCompetition)
	app.Delete("/competitions/:id", auth, competitionService.DeleteCompetition)

	app.Get("/matches", matchService.GetAllMatches)
	app.Get("/matches/:id", matchService.GetMatchByID)
	app.Post("/matches", auth, matchService.CreateMatch)
	app.Put("/matches/:id", auth, matchService.UpdateMatch)
	app.Patch("/matches/:id", auth, matchService.UpdateMatch)
	app.Delete("/matches/:id", auth, matchService.DeleteMatch)

	app.Get("/appearances", appearanceService.GetAllAppearances)
	app.Get("/appearances/:id", appearanceService.GetAppearanceByID)
	app.Post("/appearances", auth, appearanceService.CreateAppearance)
	app.Put("/appearances/:id", auth, appearanceService.UpdateAppearance)
	app.Delete("/appearances/:id", auth, appearanceService.DeleteAppearance)
}
