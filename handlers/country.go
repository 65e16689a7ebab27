// handlers/country.go
package handlers

import (
	"football-stats-api/middleware"
	"football-stats-api/services"

	"github.com/gofiber/fiber/v2"
)

// SetupCountryRoutes registers the country and city resources.
// Reads are public; every mutation goes through the token gate.
func SetupCountryRoutes(app *fiber.App, countryService *services.CountryService, cityService *services.CityService, verifier middleware.TokenVerifier) {
	auth := middleware.TokenAuth(verifier)

	app.Get("/countries", countryService.GetAllCountries)
	app.Get("/countries/:id", countryService.GetCountryByID)
	app.Post("/countries", auth, countryService.CreateCountry)
	app.Put("/countries/:id", auth, countryService.UpdateCountry)
	app.Delete("/countries/:id", auth, countryService.DeleteCountry)

	app.Get("/cities", cityService.GetAllCities)
	app.Get("/cities/:id", cityService.GetCityByID)
	app.Post("/cities", auth, cityService.CreateCity)
	app.Put("/cities/:id", auth, cityService.UpdateCity)
	app.Delete("/cities/:id", auth, cityService.DeleteCity)
}
