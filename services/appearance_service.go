package services

import (
	"errors"
	"time"

	"football-stats-api/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AppearanceService struct {
	DB *gorm.DB
}

func NewAppearanceService(db *gorm.DB) *AppearanceService {
	return &AppearanceService{DB: db}
}

type AppearanceCreate struct {
	MatchID       uint `json:"match_id"`
	PlayerID      uint `json:"player_id"`
	Goals         int  `json:"goals"`
	Assists       int  `json:"assists"`
	MinutesPlayed int  `json:"minutes_played"`
	Starter       bool `json:"starter"`
	YellowCard    bool `json:"yellow_card"`
	RedCard       bool `json:"red_card"`
}

type AppearancePatch struct {
	Goals         *int  `json:"goals"`
	Assists       *int  `json:"assists"`
	MinutesPlayed *int  `json:"minutes_played"`
	Starter       *bool `json:"starter"`
	YellowCard    *bool `json:"yellow_card"`
	RedCard       *bool `json:"red_card"`
}

type AppearanceResponse struct {
	ID            uint      `json:"id"`
	MatchID       uint      `json:"match_id"`
	MatchDate     time.Time `json:"match_date"`
	Player        string    `json:"player"`
	Goals         int       `json:"goals"`
	Assists       int       `json:"assists"`
	MinutesPlayed int       `json:"minutes_played"`
	Starter       bool      `json:"starter"`
	YellowCard    bool      `json:"yellow_card"`
	RedCard       bool      `json:"red_card"`
}

func newAppearanceResponse(a models.Appearance) AppearanceResponse {
	return AppearanceResponse{
		ID:            a.ID,
		MatchID:       a.MatchID,
		MatchDate:     a.Match.Date,
		Player:        a.Player.FirstName + " " + a.Player.LastName,
		Goals:         a.Goals,
		Assists:       a.Assists,
		MinutesPlayed: a.MinutesPlayed,
		Starter:       a.Starter,
		YellowCard:    a.YellowCard,
		RedCard:       a.RedCard,
	}
}

func (s *AppearanceService) appearanceQuery(c *fiber.Ctx) *gorm.DB {
	return s.DB.WithContext(c.Context()).Preload("Match").Preload("Player")
}

func (s *AppearanceService) GetAllAppearances(c *fiber.Ctx) error {
	var apps []models.Appearance
	if err := s.appearanceQuery(c).Find(&apps).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to fetch appearances"})
	}

	res := make([]AppearanceResponse, len(apps))
	for i, a := range apps {
		res[i] = newAppearanceResponse(a)
	}
	return c.JSON(res)
}

func (s *AppearanceService) GetAppearanceByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid appearance id"})
	}

	var app models.Appearance
	if err := s.appearanceQuery(c).First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Appearance not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(newAppearanceResponse(app))
}

func (s *AppearanceService) CreateAppearance(c *fiber.Ctx) error {
	var payload AppearanceCreate
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if payload.MatchID == 0 || payload.PlayerID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "match_id and player_id are required"})
	}
	if payload.Goals < 0 || payload.Assists < 0 || payload.MinutesPlayed < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "stat fields must not be negative"})
	}

	db := s.DB.WithContext(c.Context())
	if ok, err := rowExists(db, &models.Match{}, payload.MatchID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	} else if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "match_id does not reference an existing row"})
	}
	if ok, err := rowExists(db, &models.Player{}, payload.PlayerID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	} else if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "player_id does not reference an existing row"})
	}

	app := models.Appearance{
		MatchID:       payload.MatchID,
		PlayerID:      payload.PlayerID,
		Goals:         payload.Goals,
		Assists:       payload.Assists,
		MinutesPlayed: payload.MinutesPlayed,
		Starter:       payload.Starter,
		YellowCard:    payload.YellowCard,
		RedCard:       payload.RedCard,
	}
	if err := db.Create(&app).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create appearance"})
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

func (s *AppearanceService) UpdateAppearance(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid appearance id"})
	}

	db := s.DB.WithContext(c.Context())

	var app models.Appearance
	if err := db.First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Appearance not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	var patch AppearancePatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if patch.Goals != nil {
		app.Goals = *patch.Goals
	}
	if patch.Assists != nil {
		app.Assists = *patch.Assists
	}
	if patch.MinutesPlayed != nil {
		app.MinutesPlayed = *patch.MinutesPlayed
	}
	if patch.Starter != nil {
		app.Starter = *patch.Starter
	}
	if patch.YellowCard != nil {
		app.YellowCard = *patch.YellowCard
	}
	if patch.RedCard != nil {
		app.RedCard = *patch.RedCard
	}
	if app.Goals < 0 || app.Assists < 0 || app.MinutesPlayed < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "stat fields must not be negative"})
	}

	if err := db.Save(&app).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to update appearance"})
	}

	if err := s.appearanceQuery(c).First(&app, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(newAppearanceResponse(app))
}

func (s *AppearanceService) DeleteAppearance(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid appearance id"})
	}

	db := s.DB.WithContext(c.Context())

	var app models.Appearance
	if err := db.First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Appearance not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	// Appearances are leaves — nothing references them.
	if err := db.Delete(&app).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to delete appearance"})
	}
	return c.JSON(fiber.Map{"message": "Appearance deleted successfully"})
}
