package services

import (
	"errors"
	"time"

	"football-stats-api/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TransferService owns transfers and career stints — the two fact tables
// describing how a player moves between clubs over time.
type TransferService struct {
	DB *gorm.DB
}

func NewTransferService(db *gorm.DB) *TransferService {
	return &TransferService{DB: db}
}

type TransferCreate struct {
	PlayerID     uint   `json:"player_id"`
	FromClubID   *uint  `json:"from_club_id"`
	ToClubID     *uint  `json:"to_club_id"`
	TransferDate string `json:"transfer_date"`
	Fee          *int64 `json:"fee"`
	MarketValue  *int64 `json:"market_value"`
	Type         string `json:"type"`
}

type TransferPatch struct {
	FromClubID   *uint   `json:"from_club_id"`
	ToClubID     *uint   `json:"to_club_id"`
	TransferDate *string `json:"transfer_date"`
	Fee          *int64  `json:"fee"`
	MarketValue  *int64  `json:"market_value"`
	Type         *string `json:"type"`
}

type TransferResponse struct {
	ID           uint      `json:"id"`
	Player       string    `json:"player"`
	FromClub     *string   `json:"from_club"`
	ToClub       *string   `json:"to_club"`
	TransferDate time.Time `json:"transfer_date"`
	Fee          *int64    `json:"fee"`
	MarketValue  *int64    `json:"market_value"`
	Type         string    `json:"type"`
}

func newTransferResponse(t models.Transfer) TransferResponse {
	res := TransferResponse{
		ID:           t.ID,
		Player:       t.Player.FirstName + " " + t.Player.LastName,
		TransferDate: t.TransferDate,
		Fee:          t.Fee,
		MarketValue:  t.MarketValue,
		Type:         t.Type,
	}
	if t.FromClub != nil {
		res.FromClub = &t.FromClub.Name
	}
	if t.ToClub != nil {
		res.ToClub = &t.ToClub.Name
	}
	return res
}

func (s *TransferService) transferQuery(c *fiber.Ctx) *gorm.DB {
	return s.DB.WithContext(c.Context()).
		Preload("Player").
		Preload("FromClub").
		Preload("ToClub")
}

func (s *TransferService) checkTransferRefs(db *gorm.DB, t *models.Transfer) (string, error) {
	if ok, err := rowExists(db, &models.Player{}, t.PlayerID); err != nil {
		return "", err
	} else if !ok {
		return "player_id", nil
	}
	for _, fk := range []struct {
		id    *uint
		field string
	}{
		{t.FromClubID, "from_club_id"},
		{t.ToClubID, "to_club_id"},
	} {
		if fk.id == nil {
			continue
		}
		ok, err := rowExists(db, &models.Club{}, *fk.id)
		if err != nil {
			return "", err
		}
		if !ok {
			return fk.field, nil
		}
	}
	return "", nil
}

func (s *TransferService) GetAllTransfers(c *fiber.Ctx) error {
	var transfers []models.Transfer
	if err := s.transferQuery(c).Find(&transfers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to fetch transfers"})
	}

	res := make([]TransferResponse, len(transfers))
	for i, t := range transfers {
		res[i] = newTransferResponse(t)
	}
	return c.JSON(res)
}

func (s *TransferService) GetTransferByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid transfer id"})
	}

	var transfer models.Transfer
	if err := s.transferQuery(c).First(&transfer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Transfer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(newTransferResponse(transfer))
}

func (s *TransferService) CreateTransfer(c *fiber.Ctx) error {
	var payload TransferCreate
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if payload.PlayerID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "player_id is required"})
	}
	if payload.TransferDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "transfer_date is required"})
	}
	transferDate, err := parseDate(payload.TransferDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "transfer_date must be YYYY-MM-DD"})
	}

	transfer := models.Transfer{
		PlayerID:     payload.PlayerID,
		FromClubID:   payload.FromClubID,
		ToClubID:     payload.ToClubID,
		TransferDate: transferDate,
		Fee:          payload.Fee,
		MarketValue:  payload.MarketValue,
		Type:         payload.Type,
	}

	db := s.DB.WithContext(c.Context())
	if field, err := s.checkTransferRefs(db, &transfer); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	} else if field != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": field + " does not reference an existing row"})
	}

	if err := db.Create(&transfer).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create transfer"})
	}
	return c.Status(fiber.StatusCreated).JSON(transfer)
}

func (s *TransferService) UpdateTransfer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid transfer id"})
	}

	db := s.DB.WithContext(c.Context())

	var transfer models.Transfer
	if err := db.First(&transfer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Transfer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	var patch TransferPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if patch.FromClubID != nil {
		transfer.FromClubID = patch.FromClubID
	}
	if patch.ToClubID != nil {
		transfer.ToClubID = patch.ToClubID
	}
	if patch.TransferDate != nil {
		transferDate, err := parseDate(*patch.TransferDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "transfer_date must be YYYY-MM-DD"})
		}
		transfer.TransferDate = transferDate
	}
	if patch.Fee != nil {
		transfer.Fee = patch.Fee
	}
	if patch.MarketValue != nil {
		transfer.MarketValue = patch.MarketValue
	}
	if patch.Type != nil {
		transfer.Type = *patch.Type
	}

	if field, err := s.checkTransferRefs(db, &transfer); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	} else if field != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": field + " does not reference an existing row"})
	}

	if err := db.Save(&transfer).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to update transfer"})
	}

	if err := s.transferQuery(c).First(&transfer, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}
	return c.JSON(newTransferResponse(transfer))
}

func (s *TransferService) DeleteTransfer(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid transfer id"})
	}

	db := s.DB.WithContext(c.Context())

	var transfer models.Transfer
	if err := db.First(&transfer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Transfer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "DB error"})
	}

	if err := db.Delete(&transfer).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to delete transfer"})
	}
	return c.JSON(fiber.Map{"message": "Transfer deleted successfully"})
}
