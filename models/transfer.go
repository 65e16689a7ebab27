package models

import "time"

const (
	TransferTypePermanent = "permanent"
	TransferTypeLoan      = "loan"
	TransferTypeFree      = "free"
)

// Transfer is a player movement between clubs. FromClub is nil for a first
// signing, ToClub is nil for a contract termination / retirement.
type Transfer struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	PlayerID     uint      `json:"player_id" gorm:"index;not null"`
	FromClubID   *uint     `json:"from_club_id,omitempty" gorm:"index"`
	ToClubID     *uint     `json:"to_club_id,omitempty" gorm:"index"`
	TransferDate time.Time `json:"transfer_date" gorm:"not null;index"`
	Fee          *int64    `json:"fee,omitempty"`          // in euros
	MarketValue  *int64    `json:"market_value,omitempty"` // in euros
	Type         string    `json:"type"`                   // permanent | loan | free

	Player   Player `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	FromClub *Club  `json:"from_club,omitempty" gorm:"foreignKey:FromClubID"`
	ToClub   *Club  `json:"to_club,omitempty" gorm:"foreignKey:ToClubID"`
	Timestamps
}

// PlayerCareer is one stint at a club. EndDate nil = ongoing.
type PlayerCareer struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	PlayerID  uint       `json:"player_id" gorm:"index;not null"`
	ClubID    uint       `json:"club_id" gorm:"index;not null"`
	StartDate time.Time  `json:"start_date" gorm:"not null"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	Player Player `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	Club   Club   `json:"club,omitempty" gorm:"foreignKey:ClubID"`
	Timestamps
}
