package models

import "time"

// Match records one fixture between two clubs in a competition.
type Match struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Date          time.Time `json:"date" gorm:"not null;index"`
	Season        string    `json:"season"` // e.g. "2023/24"
	HomeGoals     int       `json:"home_goals" gorm:"default:0"`
	AwayGoals     int       `json:"away_goals" gorm:"default:0"`
	Result        string    `json:"result"` // aggregate, e.g. "2:1"
	ArticleURL    string    `json:"article_url"`
	CompetitionID uint      `json:"competition_id" gorm:"index;not null"`
	HomeClubID    uint      `json:"home_club_id" gorm:"index;not null"`
	AwayClubID    uint      `json:"away_club_id" gorm:"index;not null"`

	Competition Competition `json:"competition,omitempty" gorm:"foreignKey:CompetitionID"`
	HomeClub    Club        `json:"home_club,omitempty" gorm:"foreignKey:HomeClubID"`
	AwayClub    Club        `json:"away_club,omitempty" gorm:"foreignKey:AwayClubID"`
	Timestamps
}

// Appearance is one player's line in one match.
type Appearance struct {
	ID            uint `json:"id" gorm:"primaryKey"`
	MatchID       uint `json:"match_id" gorm:"index;not null"`
	PlayerID      uint `json:"player_id" gorm:"index;not null"`
	Goals         int  `json:"goals" gorm:"default:0"`
	Assists       int  `json:"assists" gorm:"default:0"`
	MinutesPlayed int  `json:"minutes_played" gorm:"default:0"`
	Starter       bool `json:"starter" gorm:"default:false"`
	YellowCard    bool `json:"yellow_card" gorm:"default:false"`
	RedCard       bool `json:"red_card" gorm:"default:false"`

	Match  Match  `json:"match,omitempty" gorm:"foreignKey:MatchID"`
	Player Player `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	Timestamps
}
