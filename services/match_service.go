package services

import (
	"errors"
	"fmt"
	"time"

	"football-stats-api/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MatchService owns fixtures and the appearance lines hanging off them.
type MatchService struct {
	DB *gorm.DB
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{DB: db}
}

type MatchCreate struct {
	Date          string `json:"date"` // "2024-05-11" or RFC3339
	Season        string `json:"season"`
	HomeGoals     int    `json:"home_goals"`
	AwayGoals     int    `json:"away_goals"`
	ArticleURL    string `json:"article_url"`
	CompetitionID uint   `json:"competition_id"`
	HomeClubID    uint   `json:"home_club_id"`
	AwayClubID    uint   `json:"away_club_id"`
}

type MatchPatch struct {
	Date          *string `json:"date"`
	Season        *string `json:"season"`
	HomeGoals     *int    `json:"home_goals"`
	AwayGoals     *int    `json:"away_goals"`
	ArticleURL    *string `json:"article_url"`
	CompetitionID *uint   `json:"competition_id"`
	HomeClubID    *uint   `json:"home_club_id"`
	AwayClubID    *uint   `json:"away_club_id"`
}

type MatchResponse struct {
	ID          uint      `json:"id"`
	Date        time.Time `json:"date"`
	Season      string    `json:"season"`
	Competition string    `json:"competition"`
	HomeClub    string    `json:"home_club"`
	AwayClub    string    `json:"away_club"`
	HomeGoals   int       `json:"home_goals"`
	AwayGoals   int       `json:"away_goals"`
	Result      string    `json:"result"`
	ArticleURL  string    `json:"article_url"`
}

func newMatchResponse(m models.Match) MatchResponse {
	return MatchResponse{
		ID:          m.ID,
		Date:        m.Date,
		Season:      m.Season,
		Competition: m.Competition.Name,
		HomeClub:    m.HomeClub.Name,
		AwayClub:    m.AwayClub.Name,
		HomeGoals:   m.HomeGoals,
		AwayGoals:   m.AwayGoals,
		Result:      m.Result,
		ArticleURL:  m.ArticleURL,
	}
}

func (s *MatchService) matchQuery(c *fiber.Ctx) *gorm.DB {
	return s.DB.WithContext(c.Context()).
		Preload("Competition").
		Preload("HomeClub").
		Preload("AwayClub")
}

func (s *MatchService) checkMatchRefs(db *gorm.DB, m *models.Match) (string, error) {
	fks := []struct {
		id    uint
		model interface{}
		field string
	}{
		{m.CompetitionID, &models.Competition{}, "competition_id"},
		{m.HomeClubID, &models.Club{}, "home_club_id"},
		{m.AwayClubID, &models.Club{}, "away_club_id"},
	}
	for _, fk := range fks {
		ok, err := rowExists(db, fk.model, fk.id)
		if err != nil {
			return "", err
		}
		if !ok {
			return fk.field, nil
		}
	}
	return "", nil
}

func (s *MatchService) GetAllMatches(c *fiber.Ctx) error {
	var matches []models.Match
	if err := s.matchQuery(c).Find(&matches).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to fetch matches"})
	}

	res := make([]MatchResponse, len(matches))
	for i, m := range matches {
		res[i] = newMatchResponse(m)
	}
	return c.JSON(res)
}

func (s *MatchService) GetMatchByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid match id"})
	}

	var match models.Match
	if err := s.matchQuery(c).First(&match, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Match not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(newMatchResponse(match))
}

func (s *MatchService) CreateMatch(c *fiber.Ctx) error {
	var payload MatchCreate
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if payload.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "date is required"})
	}
	if payload.CompetitionID == 0 || payload.HomeClubID == 0 || payload.AwayClubID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "competition_id, home_club_id and away_club_id are required"})
	}
	if payload.HomeClubID == payload.AwayClubID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "home_club_id and away_club_id must differ"})
	}
	date, err := parseDate(payload.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "date must be YYYY-MM-DD"})
	}
	if payload.HomeGoals < 0 || payload.AwayGoals < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "goals must not be negative"})
	}

	match := models.Match{
		Date:          date,
		Season:        payload.Season,
		HomeGoals:     payload.HomeGoals,
		AwayGoals:     payload.AwayGoals,
		Result:        fmt.Sprintf("%d:%d", payload.HomeGoals, payload.AwayGoals),
		ArticleURL:    payload.ArticleURL,
		CompetitionID: payload.CompetitionID,
		HomeClubID:    payload.HomeClubID,
		AwayClubID:    payload.AwayClubID,
	}

	db := s.DB.WithContext(c.Context())
	if field, err := s.checkMatchRefs(db, &match); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	} else if field != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": field + " does not reference an existing row"})
	}

	if err := db.Create(&match).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create match"})
	}
	return c.Status(fiber.StatusCreated).JSON(match)
}

func (s *MatchService) UpdateMatch(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid match id"})
	}

	db := s.DB.WithContext(c.Context())

	var match models.Match
	if err := db.First(&match, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Match not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	var patch MatchPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if patch.Date != nil {
		date, err := parseDate(*patch.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "date must be YYYY-MM-DD"})
		}
		match.Date = date
	}
	if patch.Season != nil {
		match.Season = *patch.Season
	}
	if patch.HomeGoals != nil {
		if *patch.HomeGoals < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "goals must not be negative"})
		}
		match.HomeGoals = *patch.HomeGoals
	}
	if patch.AwayGoals != nil {
		if *patch.AwayGoals < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "goals must not be negative"})
		}
		match.AwayGoals = *patch.AwayGoals
	}
	if patch.ArticleURL != nil {
		match.ArticleURL = *patch.ArticleURL
	}
	if patch.CompetitionID != nil {
		match.CompetitionID = *patch.CompetitionID
	}
	if patch.HomeClubID != nil {
		match.HomeClubID = *patch.HomeClubID
	}
	if patch.AwayClubID != nil {
		match.AwayClubID = *patch.AwayClubID
	}
	if match.HomeClubID == match.AwayClubID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "home_club_id and away_club_id must differ"})
	}
	// The aggregate tracks the score columns.
	match.Result = fmt.Sprintf("%d:%d", match.HomeGoals, match.AwayGoals)

	if field, err := s.checkMatchRefs(db, &match); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	} else if field != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": field + " does not reference an existing row"})
	}

	if err := db.Save(&match).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to update match"})
	}

	if err := s.matchQuery(c).First(&match, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(newMatchResponse(match))
}

func (s *MatchService) DeleteMatch(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid match id"})
	}

	db := s.DB.WithContext(c.Context())

	var match models.Match
	if err := db.First(&match, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Match not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	label, err := blockingRef(db, id, []refCheck{
		{&models.Appearance{}, "match_id", "appearances"},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	if label != "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Match is still referenced by " + label})
	}

	if err := db.Delete(&match).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to delete match"})
	}
	return c.JSON(fiber.Map{"message": "Match deleted successfully"})
}
