package services

import (
	"errors"

	"football-stats-api/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type CompetitionService struct {
	DB *gorm.DB
}

func NewCompetitionService(db *gorm.DB) *CompetitionService {
	return &CompetitionService{DB: db}
}

type CompetitionCreate struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	CountryID uint   `json:"country_id"`
}

type CompetitionPatch struct {
	Name      *string `json:"name"`
	Type      *string `json:"type"`
	CountryID *uint   `json:"country_id"`
}

type CompetitionResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Type    string `json:"type"`
	Country string `json:"country"`
}

func newCompetitionResponse(comp models.Competition) CompetitionResponse {
	return CompetitionResponse{
		ID:      comp.ID,
		Name:    comp.Name,
		Slug:    comp.Slug,
		Type:    comp.Type,
		Country: comp.Country.Name,
	}
}

func (s *CompetitionService) GetAllCompetitions(c *fiber.Ctx) error {
	var comps []models.Competition
	if err := s.DB.WithContext(c.Context()).Preload("Country").Find(&comps).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to fetch competitions"})
	}

	res := make([]CompetitionResponse, len(comps))
	for i, comp := range comps {
		res[i] = newCompetitionResponse(comp)
	}
	return c.JSON(res)
}

func (s *CompetitionService) GetCompetitionByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid competition id"})
	}

	var comp models.Competition
	if err := s.DB.WithContext(c.Context()).Preload("Country").First(&comp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Competition not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(newCompetitionResponse(comp))
}

func (s *CompetitionService) CreateCompetition(c *fiber.Ctx) error {
	var payload CompetitionCreate
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

	comp := models.Competition{
		Name:      payload.Name,
		Slug:      slug.Make(payload.Name),
		Type:      payload.Type,
		CountryID: payload.CountryID,
	}
	if err := db.Create(&comp).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create competition"})
	}
	return c.Status(fiber.StatusCreated).JSON(comp)
}

func (s *CompetitionService) UpdateCompetition(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid competition id"})
	}

	db := s.DB.WithContext(c.Context())

	var comp models.Competition
	if err := db.First(&comp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Competition not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	var patch CompetitionPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name must not be empty"})
		}
		comp.Name = *patch.Name
		comp.Slug = slug.Make(*patch.Name)
	}
	if patch.Type != nil {
		comp.Type = *patch.Type
	}
	if patch.CountryID != nil {
		if ok, err := rowExists(db, &models.Country{}, *patch.CountryID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
		} else if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "country_id does not reference an existing row"})
		}
		comp.CountryID = *patch.CountryID
	}

	if err := db.Save(&comp).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to update competition"})
	}

	if err := db.Preload("Country").First(&comp, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(newCompetitionResponse(comp))
}

func (s *CompetitionService) DeleteCompetition(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid competition id"})
	}

	db := s.DB.WithContext(c.Context())

	var comp models.Competition
	if err := db.First(&comp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Competition not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	label, err := blockingRef(db, id, []refCheck{
		{&models.Match{}, "competition_id", "matches"},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	if label != "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Competition is still referenced by " + label})
	}

	if err := db.Delete(&comp).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to delete competition"})
	}
	return c.JSON(fiber.Map{"message": "Competition deleted successfully"})
}
