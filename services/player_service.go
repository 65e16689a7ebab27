package services

import (
	"errors"
	"path/filepath"
	"time"

	"football-stats-api/models"
	"football-stats-api/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlayerService struct {
	DB *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{DB: db}
}

type PlayerCreate struct {
	FirstName            string  `json:"first_name"`
	LastName             string  `json:"last_name"`
	BirthDate            string  `json:"birth_date"` // "1987-06-24" or RFC3339
	HeightInCM           *int    `json:"height_in_cm"`
	Foot                 *string `json:"foot"`
	SubPosition          *string `json:"sub_position"`
	Retired              bool    `json:"retired"`
	ImageURL             string  `json:"image_url"`
	CountryBornID        *uint   `json:"country_born_id"`
	CountryNationalityID *uint   `json:"country_nationality_id"`
	CurrentClubID        *uint   `json:"current_club_id"`
	PositionID           *uint   `json:"position_id"`
}

type PlayerPatch struct {
	FirstName            *string `json:"first_name"`
	LastName             *string `json:"last_name"`
	BirthDate            *string `json:"birth_date"`
	HeightInCM           *int    `json:"height_in_cm"`
	Foot                 *string `json:"foot"`
	SubPosition          *string `json:"sub_position"`
	Retired              *bool   `json:"retired"`
	ImageURL             *string `json:"image_url"`
	CountryBornID        *uint   `json:"country_born_id"`
	CountryNationalityID *uint   `json:"country_nationality_id"`
	CurrentClubID        *uint   `json:"current_club_id"`
	PositionID           *uint   `json:"position_id"`
}

// PlayerResponse is the expanded read shape: foreign keys resolved to the
// referenced row's display name.
type PlayerResponse struct {
	ID                 uint      `json:"id"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	BirthDate          time.Time `json:"birth_date"`
	CountryBorn        *string   `json:"country_born"`
	CountryNationality *string   `json:"country_nationality"`
	CurrentClub        *string   `json:"current_club"`
	Position           *string   `json:"position"`
	SubPosition        *string   `json:"sub_position"`
	Foot               *string   `json:"foot"`
	HeightInCM         *int      `json:"height_in_cm"`
	ImageURL           string    `json:"image_url"`
	Retired            bool      `json:"retired"`
}

func newPlayerResponse(p models.Player) PlayerResponse {
	res := PlayerResponse{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		BirthDate:   p.BirthDate,
		SubPosition: p.SubPosition,
		Foot:        p.Foot,
		HeightInCM:  p.HeightInCM,
		ImageURL:    p.ImageURL,
		Retired:     p.Retired,
	}
	if p.CountryBorn != nil {
		res.CountryBorn = &p.CountryBorn.Name
	}
	if p.CountryNationality != nil {
		res.CountryNationality = &p.CountryNationality.Name
	}
	if p.CurrentClub != nil {
		res.CurrentClub = &p.CurrentClub.Name
	}
	if p.Position != nil {
		res.Position = &p.Position.Name
	}
	return res
}

func (s *PlayerService) playerQuery(c *fiber.Ctx) *gorm.DB {
	return s.DB.WithContext(c.Context()).
		Preload("CountryBorn").
		Preload("CountryNationality").
		Preload("CurrentClub").
		Preload("Position")
}

// checkPlayerRefs validates that every non-nil foreign key points at an
// existing row. Returns the offending field name, or "".
func (s *PlayerService) checkPlayerRefs(db *gorm.DB, p *models.Player) (string, error) {
	fks := []struct {
		id    *uint
		model interface{}
		field string
	}{
		{p.CountryBornID, &models.Country{}, "country_born_id"},
		{p.CountryNationalityID, &models.Country{}, "country_nationality_id"},
		{p.CurrentClubID, &models.Club{}, "current_club_id"},
		{p.PositionID, &models.Position{}, "position_id"},
	}
	for _, fk := range fks {
		if fk.id == nil {
			continue
		}
		ok, err := rowExists(db, fk.model, *fk.id)
		if err != nil {
			return "", err
		}
		if !ok {
			return fk.field, nil
		}
	}
	return "", nil
}

// GetAllPlayers returns every player with country/club/position names resolved.
func (s *PlayerService) GetAllPlayers(c *fiber.Ctx) error {
	var players []models.Player
	if err := s.playerQuery(c).Find(&players).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to fetch players"})
	}

	res := make([]PlayerResponse, len(players))
	for i, p := range players {
		res[i] = newPlayerResponse(p)
	}
	return c.JSON(res)
}

func (s *PlayerService) GetPlayerByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid player id"})
	}

	var player models.Player
	if err := s.playerQuery(c).First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Player not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(newPlayerResponse(player))
}

func (s *PlayerService) CreatePlayer(c *fiber.Ctx) error {
	var payload PlayerCreate
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if payload.FirstName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "first_name is required"})
	}
	if payload.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "last_name is required"})
	}
	if payload.BirthDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "birth_date is required"})
	}
	birthDate, err := parseDate(payload.BirthDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "birth_date must be YYYY-MM-DD"})
	}

	player := models.Player{
		FirstName:            payload.FirstName,
		LastName:             payload.LastName,
		BirthDate:            birthDate,
		HeightInCM:           payload.HeightInCM,
		Foot:                 payload.Foot,
		SubPosition:          payload.SubPosition,
		Retired:              payload.Retired,
		ImageURL:             payload.ImageURL,
		CountryBornID:        payload.CountryBornID,
		CountryNationalityID: payload.CountryNationalityID,
		CurrentClubID:        payload.CurrentClubID,
		PositionID:           payload.PositionID,
	}

	db := s.DB.WithContext(c.Context())
	if field, err := s.checkPlayerRefs(db, &player); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	} else if field != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": field + " does not reference an existing row"})
	}

	if err := db.Create(&player).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create player"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Player added successfully.",
		"player": fiber.Map{
			"id":         player.ID,
			"first_name": player.FirstName,
			"last_name":  player.LastName,
		},
	})
}

func (s *PlayerService) UpdatePlayer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid player id"})
	}

	db := s.DB.WithContext(c.Context())

	var player models.Player
	if err := db.First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Player not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	var patch PlayerPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	// Explicit merge: only fields present in the payload change.
	if patch.FirstName != nil {
		if *patch.FirstName == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "first_name must not be empty"})
		}
		player.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		if *patch.LastName == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "last_name must not be empty"})
		}
		player.LastName = *patch.LastName
	}
	if patch.BirthDate != nil {
		birthDate, err := parseDate(*patch.BirthDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "birth_date must be YYYY-MM-DD"})
		}
		player.BirthDate = birthDate
	}
	if patch.HeightInCM != nil {
		player.HeightInCM = patch.HeightInCM
	}
	if patch.Foot != nil {
		player.Foot = patch.Foot
	}
	if patch.SubPosition != nil {
		player.SubPosition = patch.SubPosition
	}
	if patch.Retired != nil {
		player.Retired = *patch.Retired
	}
	if patch.ImageURL != nil {
		player.ImageURL = *patch.ImageURL
	}
	if patch.CountryBornID != nil {
		player.CountryBornID = patch.CountryBornID
	}
	if patch.CountryNationalityID != nil {
		player.CountryNationalityID = patch.CountryNationalityID
	}
	if patch.CurrentClubID != nil {
		player.CurrentClubID = patch.CurrentClubID
	}
	if patch.PositionID != nil {
		player.PositionID = patch.PositionID
	}

	if field, err := s.checkPlayerRefs(db, &player); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	} else if field != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": field + " does not reference an existing row"})
	}

	if err := db.Save(&player).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to update player"})
	}

	// Reload with associations for the expanded response.
	if err := s.playerQuery(c).First(&player, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	return c.JSON(fiber.Map{
		"message": "Player updated successfully.",
		"player":  newPlayerResponse(player),
	})
}

func (s *PlayerService) DeletePlayer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid player id"})
	}

	db := s.DB.WithContext(c.Context())

	var player models.Player
	if err := db.First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Player not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	label, err := blockingRef(db, id, []refCheck{
		{&models.Appearance{}, "player_id", "appearances"},
		{&models.Transfer{}, "player_id", "transfers"},
		{&models.PlayerCareer{}, "player_id", "careers"},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	if label != "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Player is still referenced by " + label})
	}

	if err := db.Delete(&player).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to delete player"})
	}
	return c.JSON(fiber.Map{"message": "Player deleted successfully"})
}

// UploadPlayerImage stores a portrait in the media bucket and saves its URL.
func (s *PlayerService) UploadPlayerImage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid player id"})
	}

	db := s.DB.WithContext(c.Context())

	var player models.Player
	if err := db.First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Player not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	imageFile, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "image is required"})
	}

	ext := filepath.Ext(imageFile.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := "players/" + uuid.NewString() + ext
	imageURL, err := utils.UploadFileToBucket(imageFile, key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to upload image"})
	}

	player.ImageURL = imageURL
	if err := db.Save(&player).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to update player"})
	}

	return c.JSON(fiber.Map{
		"message":   "Player image uploaded successfully.",
		"image_url": imageURL,
	})
}
