package services

import (
	"errors"
	"time"

	"football-stats-api/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CareerService struct {
	DB *gorm.DB
}

func NewCareerService(db *gorm.DB) *CareerService {
	return &CareerService{DB: db}
}

type CareerCreate struct {
	PlayerID  uint   `json:"player_id"`
	ClubID    uint   `json:"club_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"` // empty = ongoing
}

type CareerPatch struct {
	ClubID    *uint   `json:"club_id"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type CareerResponse struct {
	ID        uint       `json:"id"`
	Player    string     `json:"player"`
	Club      string     `json:"club"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

func newCareerResponse(career models.PlayerCareer) CareerResponse {
	return CareerResponse{
		ID:        career.ID,
		Player:    career.Player.FirstName + " " + career.Player.LastName,
		Club:      career.Club.Name,
		StartDate: career.StartDate,
		EndDate:   career.EndDate,
	}
}

func (s *CareerService) careerQuery(c *fiber.Ctx) *gorm.DB {
	return s.DB.WithContext(c.Context()).Preload("Player").Preload("Club")
}

func (s *CareerService) GetAllCareers(c *fiber.Ctx) error {
	var careers []models.PlayerCareer
	if err := s.careerQuery(c).Find(&careers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to fetch careers"})
	}

	res := make([]CareerResponse, len(careers))
	for i, career := range careers {
		res[i] = newCareerResponse(career)
	}
	return c.JSON(res)
}

func (s *CareerService) GetCareerByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid career id"})
	}

	var career models.PlayerCareer
	if err := s.careerQuery(c).First(&career, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Career not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(newCareerResponse(career))
}

func (s *CareerService) CreateCareer(c *fiber.Ctx) error {
	var payload CareerCreate
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if payload.PlayerID == 0 || payload.ClubID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "player_id and club_id are required"})
	}
	if payload.StartDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "start_date is required"})
	}
	startDate, err := parseDate(payload.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "start_date must be YYYY-MM-DD"})
	}

	career := models.PlayerCareer{
		PlayerID:  payload.PlayerID,
		ClubID:    payload.ClubID,
		StartDate: startDate,
	}
	if payload.EndDate != "" {
		endDate, err := parseDate(payload.EndDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "end_date must be YYYY-MM-DD"})
		}
		if endDate.Before(startDate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "end_date must not be before start_date"})
		}
		career.EndDate = &endDate
	}

	db := s.DB.WithContext(c.Context())
	if ok, err := rowExists(db, &models.Player{}, career.PlayerID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	} else if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "player_id does not reference an existing row"})
	}
	if ok, err := rowExists(db, &models.Club{}, career.ClubID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	} else if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "club_id does not reference an existing row"})
	}

	if err := db.Create(&career).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create career"})
	}
	return c.Status(fiber.StatusCreated).JSON(career)
}

func (s *CareerService) UpdateCareer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid career id"})
	}

	db := s.DB.WithContext(c.Context())

	var career models.PlayerCareer
	if err := db.First(&career, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Career not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	var patch CareerPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if patch.ClubID != nil {
		if ok, err := rowExists(db, &models.Club{}, *patch.ClubID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
		} else if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "club_id does not reference an existing row"})
		}
		career.ClubID = *patch.ClubID
	}
	if patch.StartDate != nil {
		startDate, err := parseDate(*patch.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "start_date must be YYYY-MM-DD"})
		}
		career.StartDate = startDate
	}
	if patch.EndDate != nil {
		// An explicit empty string reopens the stint.
		if *patch.EndDate == "" {
			career.EndDate = nil
		} else {
			endDate, err := parseDate(*patch.EndDate)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "end_date must be YYYY-MM-DD"})
			}
			career.EndDate = &endDate
		}
	}
	if career.EndDate != nil && career.EndDate.Before(career.StartDate) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "end_date must not be before start_date"})
	}

	if err := db.Save(&career).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to update career"})
	}

	if err := s.careerQuery(c).First(&career, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(newCareerResponse(career))
}

func (s *CareerService) DeleteCareer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid career id"})
	}

	db := s.DB.WithContext(c.Context())

	var career models.PlayerCareer
	if err := db.First(&career, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Career not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	if err := db.Delete(&career).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to delete career"})
	}
	return c.JSON(fiber.Map{"message": "Career deleted successfully"})
}
