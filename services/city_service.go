package services

import (
	"errors"

	"football-stats-api/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CityService struct {
	DB *gorm.DB
}

func NewCityService(db *gorm.DB) *CityService {
	return &CityService{DB: db}
}

type CityCreate struct {
	Name      string `json:"name"`
	CountryID uint   `json:"country_id"`
}

type CityPatch struct {
	Name      *string `json:"name"`
	CountryID *uint   `json:"country_id"`
}

type CityResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

func newCityResponse(city models.City) CityResponse {
	return CityResponse{ID: city.ID, Name: city.Name, Country: city.Country.Name}
}

func (s *CityService) GetAllCities(c *fiber.Ctx) error {
	var cities []models.City
	if err := s.DB.WithContext(c.Context()).Preload("Country").Find(&cities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to fetch cities"})
	}

	res := make([]CityResponse, len(cities))
	for i, city := range cities {
		res[i] = newCityResponse(city)
	}
	return c.JSON(res)
}

func (s *CityService) GetCityByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid city id"})
	}

	var city models.City
	if err := s.DB.WithContext(c.Context()).Preload("Country").First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "City not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(newCityResponse(city))
}

func (s *CityService) CreateCity(c *fiber.Ctx) error {
	var payload CityCreate
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if payload.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name is required"})
	}
	if payload.CountryID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "country_id is required"})
	}

	db := s.DB.WithContext(c.Context())
	if ok, err := rowExists(db, &models.Country{}, payload.CountryID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	} else if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "country_id does not reference an existing row"})
	}

	city := models.City{Name: payload.Name, CountryID: payload.CountryID}
	if err := db.Create(&city).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create city"})
	}
	return c.Status(fiber.StatusCreated).JSON(city)
}

func (s *CityService) UpdateCity(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid city id"})
	}

	db := s.DB.WithContext(c.Context())

	var city models.City
	if err := db.First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "City not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	var patch CityPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name must not be empty"})
		}
		city.Name = *patch.Name
	}
	if patch.CountryID != nil {
		if ok, err := rowExists(db, &models.Country{}, *patch.CountryID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
		} else if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "country_id does not reference an existing row"})
		}
		city.CountryID = *patch.CountryID
	}

	if err := db.Save(&city).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to update city"})
	}

	if err := db.Preload("Country").First(&city, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(newCityResponse(city))
}

func (s *CityService) DeleteCity(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid city id"})
	}

	db := s.DB.WithContext(c.Context())

	var city models.City
	if err := db.First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "City not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	label, err := blockingRef(db, id, []refCheck{
		{&models.Club{}, "city_id", "clubs"},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	if label != "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "City is still referenced by " + label})
	}

	if err := db.Delete(&city).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to delete city"})
	}
	return c.JSON(fiber.Map{"message": "City deleted successfully"})
}
