// handlers/club.go
package handlers

import (
	"football-stats-api/middleware"
	"football-stats-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupClubRoutes(app *fiber.App, clubService *services.ClubService, verifier middleware.TokenVerifier) {
	auth := middleware.TokenAuth(verifier)

	app.Get("/clubs", clubService.GetAllClubs)
	app.Get("/clubs/:id", clubService.GetClubByID)
	app.Post("/clubs", auth, clubService.CreateClub)
	app.Put("/clubs/:id", auth, clubService.UpdateClub)
	app.Patch("/clubs/:id", auth, clubService.UpdateClub)
	app.Delete("/clubs/:id", auth, clubService.DeleteClub)
	app.Post("/clubs/:id/logo", auth, clubService.UploadClubLogo)
}
