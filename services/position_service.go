package services

import (
	"errors"

	"football-stats-api/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PositionService struct {
	DB *gorm.DB
}

func NewPositionService(db *gorm.DB) *PositionService {
	return &PositionService{DB: db}
}

type PositionCreate struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type PositionPatch struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

func (s *PositionService) GetAllPositions(c *fiber.Ctx) error {
	var positions []models.Position
	if err := s.DB.WithContext(c.Context()).Find(&positions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to fetch positions"})
	}
	return c.JSON(positions)
}

func (s *PositionService) GetPositionByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid position id"})
	}

	var position models.Position
	if err := s.DB.WithContext(c.Context()).First(&position, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Position not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(position)
}

func (s *PositionService) CreatePosition(c *fiber.Ctx) error {
	var payload PositionCreate
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if payload.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name is required"})
	}

	position := models.Position{Name: payload.Name, Type: payload.Type}
	if err := s.DB.WithContext(c.Context()).Create(&position).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create position"})
	}
	return c.Status(fiber.StatusCreated).JSON(position)
}

func (s *PositionService) UpdatePosition(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid position id"})
	}

	var position models.Position
	if err := s.DB.WithContext(c.Context()).First(&position, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Position not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	var patch PositionPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name must not be empty"})
		}
		position.Name = *patch.Name
	}
	if patch.Type != nil {
		position.Type = *patch.Type
	}

	if err := s.DB.WithContext(c.Context()).Save(&position).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to update position"})
	}
	return c.JSON(position)
}

func (s *PositionService) DeletePosition(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid position id"})
	}

	db := s.DB.WithContext(c.Context())

	var position models.Position
	if err := db.First(&position, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Position not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	label, err := blockingRef(db, id, []refCheck{
		{&models.Player{}, "position_id", "players"},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	if label != "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Position is still referenced by " + label})
	}

	if err := db.Delete(&position).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to delete position"})
	}
	return c.JSON(fiber.Map{"message": "Position deleted successfully"})
}
