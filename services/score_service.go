package services

import (
	"errors"
	"strconv"
	"time"

	"football-stats-api/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ScoreService owns the companion mini-game: its local users and their
// recorded runs. Unrelated to the football schema.
type ScoreService struct {
	DB *gorm.DB
}

func NewScoreService(db *gorm.DB) *ScoreService {
	return &ScoreService{DB: db}
}

type UserRegister struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ScoreCreate struct {
	UserID       uint   `json:"user_id"`
	Score        int    `json:"score"`
	GameDate     string `json:"game_date"` // optional, defaults to now
	Streak       int    `json:"streak"`
	LevelReached *int   `json:"level_reached"`
}

type ScoreResponse struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Score        int       `json:"score"`
	GameDate     time.Time `json:"game_date"`
	Streak       int       `json:"streak"`
	LevelReached *int      `json:"level_reached"`
}

func newScoreResponse(score models.Score) ScoreResponse {
	return ScoreResponse{
		ID:           score.ID,
		Username:     score.User.Username,
		Score:        score.Score,
		GameDate:     score.GameDate,
		Streak:       score.Streak,
		LevelReached: score.LevelReached,
	}
}

// RegisterUser creates a mini-game account. The password is stored only as
// a bcrypt hash and never echoed back.
func (s *ScoreService) RegisterUser(c *fiber.Ctx) error {
	var payload UserRegister
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "username, email and password are required"})
	}

	db := s.DB.WithContext(c.Context())

	var n int64
	if err := db.Model(&models.User{}).
		Where("username = ? OR email = ?", payload.Username, payload.Email).
		Count(&n).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	if n > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "username or email already taken"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to hash password"})
	}

	user := models.User{
		Username:     payload.Username,
		Email:        payload.Email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully.",
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

func (s *ScoreService) GetUserByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	var user models.User
	if err := s.DB.WithContext(c.Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	// PasswordHash is json:"-" on the model, so this is safe to return as-is.
	return c.JSON(user)
}

func (s *ScoreService) GetAllScores(c *fiber.Ctx) error {
	var scores []models.Score
	if err := s.DB.WithContext(c.Context()).Preload("User").Find(&scores).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to fetch scores"})
	}

	res := make([]ScoreResponse, len(scores))
	for i, score := range scores {
		res[i] = newScoreResponse(score)
	}
	return c.JSON(res)
}

func (s *ScoreService) CreateScore(c *fiber.Ctx) error {
	var payload ScoreCreate
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if payload.UserID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "user_id is required"})
	}
	if payload.Score < 0 || payload.Streak < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "score and streak must not be negative"})
	}

	db := s.DB.WithContext(c.Context())
	if ok, err := rowExists(db, &models.User{}, payload.UserID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	} else if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "user_id does not reference an existing row"})
	}

	score := models.Score{
		UserID:       payload.UserID,
		Score:        payload.Score,
		GameDate:     time.Now().UTC(),
		Streak:       payload.Streak,
		LevelReached: payload.LevelReached,
	}
	if payload.GameDate != "" {
		gameDate, err := parseDate(payload.GameDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "game_date must be YYYY-MM-DD"})
		}
		score.GameDate = gameDate
	}

	if err := db.Create(&score).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create score"})
	}
	return c.Status(fiber.StatusCreated).JSON(score)
}

// GetLeaderboard returns the top runs, best score first.
func (s *ScoreService) GetLeaderboard(c *fiber.Ctx) error {
	limitStr := c.Query("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 10
	}

	var scores []models.Score
	if err := s.DB.WithContext(c.Context()).
		Preload("User").
		Order("score DESC").
		Limit(limit).
		Find(&scores).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to fetch leaderboard"})
	}

	res := make([]ScoreResponse, len(scores))
	for i, score := range scores {
		res[i] = newScoreResponse(score)
	}
	return c.JSON(res)
}
