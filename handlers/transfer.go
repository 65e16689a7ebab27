// handlers/transfer.go
package handlers

import (
	"football-stats-api/middleware"
	"football-stats-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTransferRoutes(app *fiber.App, transferService *services.TransferService, careerService *services.CareerService, verifier middleware.TokenVerifier) {
	auth := middleware.TokenAuth(verifier)

	app.Get("/transfers", transferService.GetAllTransfers)
	app.Get("/transfers/:id", transferService.GetTransferByID)
	app.Post("/transfers", auth, transferService.CreateTransfer)
	app.Put("/transfers/:id", auth, transferService.UpdateTransfer)
	app.Delete("/transfers/:id", auth, transferService.DeleteTransfer)

	app.Get("/careers", careerService.GetAllCareers)
	app.Get("/careers/:id", careerService.GetCareerByID)
	app.Post("/careers", auth, careerService.CreateCareer)
	app.Put("/careers/:id", auth, careerService.UpdateCareer)
	app.Delete("/careers/:id", auth, careerService.DeleteCareer)
}
