package services

import (
	"errors"
	"path/filepath"
	"time"

	"football-stats-api/models"
	"football-stats-api/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type ClubService struct {
	DB *gorm.DB
}

func NewClubService(db *gorm.DB) *ClubService {
	return &ClubService{DB: db}
}

type ClubCreate struct {
	Name        string `json:"name"`
	Nickname    string `json:"nickname"`
	Founded     string `json:"founded"` // "1899-11-29" or RFC3339
	StadiumName string `json:"stadium_name"`
	LogoURL     string `json:"logo_url"`
	CountryID   uint   `json:"country_id"`
	CityID      *uint  `json:"city_id"`
}

type ClubPatch struct {
	Name        *string `json:"name"`
	Nickname    *string `json:"nickname"`
	Founded     *string `json:"founded"`
	StadiumName *string `json:"stadium_name"`
	LogoURL     *string `json:"logo_url"`
	CountryID   *uint   `json:"country_id"`
	CityID      *uint   `json:"city_id"`
}

// ClubResponse is the expanded read shape.
type ClubResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Nickname    string     `json:"nickname"`
	Founded     *time.Time `json:"founded,omitempty"`
	StadiumName string     `json:"stadium_name"`
	LogoURL     string     `json:"logo_url"`
	Country     string     `json:"country"`
	City        *string    `json:"city"`
}

func newClubResponse(club models.Club) ClubResponse {
	res := ClubResponse{
		ID:          club.ID,
		Name:        club.Name,
		Slug:        club.Slug,
		Nickname:    club.Nickname,
		Founded:     club.Founded,
		StadiumName: club.StadiumName,
		LogoURL:     club.LogoURL,
		Country:     club.Country.Name,
	}
	if club.City != nil {
		res.City = &club.City.Name
	}
	return res
}

func (s *ClubService) clubQuery(c *fiber.Ctx) *gorm.DB {
	return s.DB.WithContext(c.Context()).Preload("Country").Preload("City")
}

func (s *ClubService) GetAllClubs(c *fiber.Ctx) error {
	var clubs []models.Club
	if err := s.clubQuery(c).Find(&clubs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to fetch clubs"})
	}

	res := make([]ClubResponse, len(clubs))
	for i, club := range clubs {
		res[i] = newClubResponse(club)
	}
	return c.JSON(res)
}

func (s *ClubService) GetClubByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid club id"})
	}

	var club models.Club
	if err := s.clubQuery(c).First(&club, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Club not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(newClubResponse(club))
}

func (s *ClubService) CreateClub(c *fiber.Ctx) error {
	var payload ClubCreate
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if payload.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name is required"})
	}
	if payload.CountryID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "country_id is required"})
	}

	club := models.Club{
		Name:        payload.Name,
		Slug:        slug.Make(payload.Name),
		Nickname:    payload.Nickname,
		StadiumName: payload.StadiumName,
		LogoURL:     payload.LogoURL,
		CountryID:   payload.CountryID,
		CityID:      payload.CityID,
	}
	if payload.Founded != "" {
		founded, err := parseDate(payload.Founded)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "founded must be YYYY-MM-DD"})
		}
		club.Founded = &founded
	}

	db := s.DB.WithContext(c.Context())

	if ok, err := rowExists(db, &models.Country{}, club.CountryID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	} else if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "country_id does not reference an existing row"})
	}
	if club.CityID != nil {
		if ok, err := rowExists(db, &models.City{}, *club.CityID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
		} else if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "city_id does not reference an existing row"})
		}
	}

	if err := db.Create(&club).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create club"})
	}
	return c.Status(fiber.StatusCreated).JSON(club)
}

func (s *ClubService) UpdateClub(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid club id"})
	}

	db := s.DB.WithContext(c.Context())

	var club models.Club
	if err := db.First(&club, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Club not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	var patch ClubPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name must not be empty"})
		}
		club.Name = *patch.Name
		club.Slug = slug.Make(*patch.Name)
	}
	if patch.Nickname != nil {
		club.Nickname = *patch.Nickname
	}
	if patch.Founded != nil {
		founded, err := parseDate(*patch.Founded)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "founded must be YYYY-MM-DD"})
		}
		club.Founded = &founded
	}
	if patch.StadiumName != nil {
		club.StadiumName = *patch.StadiumName
	}
	if patch.LogoURL != nil {
		club.LogoURL = *patch.LogoURL
	}
	if patch.CountryID != nil {
		if ok, err := rowExists(db, &models.Country{}, *patch.CountryID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
		} else if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "country_id does not reference an existing row"})
		}
		club.CountryID = *patch.CountryID
	}
	if patch.CityID != nil {
		if ok, err := rowExists(db, &models.City{}, *patch.CityID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
		} else if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "city_id does not reference an existing row"})
		}
		club.CityID = patch.CityID
	}

	if err := db.Save(&club).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to update club"})
	}

	if err := s.clubQuery(c).First(&club, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(newClubResponse(club))
}

func (s *ClubService) DeleteClub(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid club id"})
	}

	db := s.DB.WithContext(c.Context())

	var club models.Club
	if err := db.First(&club, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Club not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	label, err := blockingRef(db, id, []refCheck{
		{&models.Player{}, "current_club_id", "players"},
		{&models.Match{}, "home_club_id", "matches"},
		{&models.Match{}, "away_club_id", "matches"},
		{&models.Transfer{}, "from_club_id", "transfers"},
		{&models.Transfer{}, "to_club_id", "transfers"},
		{&models.PlayerCareer{}, "club_id", "careers"},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	if label != "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Club is still referenced by " + label})
	}

	if err := db.Delete(&club).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to delete club"})
	}
	return c.JSON(fiber.Map{"message": "Club deleted successfully"})
}

// UploadClubLogo stores a club crest in the media bucket and saves its URL.
func (s *ClubService) UploadClubLogo(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid club id"})
	}

	db := s.DB.WithContext(c.Context())

	var club models.Club
	if err := db.First(&club, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Club not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	logoFile, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "logo is required"})
	}

	ext := filepath.Ext(logoFile.Filename)
	if ext == "" {
		ext = ".png"
	}
	key := "logos/" + uuid.NewString() + ext
	logoURL, err := utils.UploadFileToBucket(logoFile, key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to upload logo"})
	}

	club.LogoURL = logoURL
	if err := db.Save(&club).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to update club"})
	}

	return c.JSON(fiber.Map{
		"message":  "Club logo uploaded successfully.",
		"logo_url": logoURL,
	})
}
