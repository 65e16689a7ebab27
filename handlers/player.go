// handlers/player.go
package handlers

import (
	"football-stats-api/middleware"
	"football-stats-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPlayerRoutes(app *fiber.App, playerService *services.PlayerService, positionService *services.PositionService, verifier middleware.TokenVerifier) {
	auth := middleware.TokenAuth(verifier)

	app.Get("/players", playerService.GetAllPlayers)
	app.Get("/players/:id", playerService.GetPlayerByID)
	app.Post("/players", auth, playerService.CreatePlayer)
	app.Put("/players/:id", auth, playerService.UpdatePlayer)
	app.Patch("/players/:id", auth, playerService.UpdatePlayer)
	app.Delete("/players/:id", auth, playerService.DeletePlayer)
	app.Post("/players/:id/image", auth, playerService.UploadPlayerImage)

	app.Get("/positions", positionService.GetAllPositions)
	app.Get("/positions/:id", positionService.GetPositionByID)
	app.Post("/positions", auth, positionService.CreatePosition)
	app.Put("/positions/:id", auth, positionService.UpdatePosition)
	app.Delete("/positions/:id", auth, positionService.DeletePosition)
}
