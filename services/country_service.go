package services

import (
	"errors"

	"football-stats-api/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CountryService struct {
	DB *gorm.DB
}

func NewCountryService(db *gorm.DB) *CountryService {
	return &CountryService{DB: db}
}

type CountryCreate struct {
	Name      string `json:"name"`
	FlagEmoji string `json:"flag_emoji"`
}

// CountryPatch carries only the fields present in the request body;
// nil means "leave unchanged".
type CountryPatch struct {
	Name      *string `json:"name"`
	FlagEmoji *string `json:"flag_emoji"`
}

// GetAllCountries returns every country.
func (s *CountryService) GetAllCountries(c *fiber.Ctx) error {
	var countries []models.Country
	if err := s.DB.WithContext(c.Context()).Find(&countries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to fetch countries"})
	}
	return c.JSON(countries)
}

func (s *CountryService) GetCountryByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid country id"})
	}

	var country models.Country
	if err := s.DB.WithContext(c.Context()).First(&country, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Country not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(country)
}

func (s *CountryService) CreateCountry(c *fiber.Ctx) error {
	var payload CountryCreate
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if payload.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name is required"})
	}

	country := models.Country{
		Name:      payload.Name,
		FlagEmoji: payload.FlagEmoji,
	}
	if err := s.DB.WithContext(c.Context()).Create(&country).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create country"})
	}

	return c.Status(fiber.StatusCreated).JSON(country)
}

func (s *CountryService) UpdateCountry(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid country id"})
	}

	var country models.Country
	if err := s.DB.WithContext(c.Context()).First(&country, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Country not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	var patch CountryPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name must not be empty"})
		}
		country.Name = *patch.Name
	}
	if patch.FlagEmoji != nil {
		country.FlagEmoji = *patch.FlagEmoji
	}

	if err := s.DB.WithContext(c.Context()).Save(&country).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to update country"})
	}
	return c.JSON(country)
}

func (s *CountryService) DeleteCountry(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid country id"})
	}

	db := s.DB.WithContext(c.Context())

	var country models.Country
	if err := db.First(&country, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Country not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	label, err := blockingRef(db, id, []refCheck{
		{&models.City{}, "country_id", "cities"},
		{&models.Club{}, "country_id", "clubs"},
		{&models.Competition{}, "country_id", "competitions"},
		{&models.Player{}, "country_born_id", "players"},
		{&models.Player{}, "country_nationality_id", "players"},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	if label != "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Country is still referenced by " + label})
	}

	if err := db.Delete(&country).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to delete country"})
	}
	return c.JSON(fiber.Map{"message": "Country deleted successfully"})
}
