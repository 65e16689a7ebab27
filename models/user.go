package models

import "time"

// User belongs to the companion mini-game, not the football schema.
// The stats API itself authenticates against the external identity service.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;not null;size:150"`
	Email        string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string `json:"-" gorm:"not null"`
	Timestamps
}

// Score is one finished mini-game run.
type Score struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	Score        int       `json:"score" gorm:"default:0"`
	GameDate     time.Time `json:"game_date"`
	Streak       int       `json:"streak" gorm:"default:0"`
	LevelReached *int      `json:"level_reached,omitempty"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Timestamps
}
