package models

import "time"

type Player struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FirstName   string    `json:"first_name" gorm:"not null;uniqueIndex:idx_players_full_name"`
	LastName    string    `json:"last_name" gorm:"not null;uniqueIndex:idx_players_full_name"`
	BirthDate   time.Time `json:"birth_date" gorm:"not null"`
	HeightInCM  *int      `json:"height_in_cm,omitempty"`
	Foot        *string   `json:"foot,omitempty" gorm:"type:varchar(16)"` // left | right | both
	SubPosition *string   `json:"sub_position,omitempty"`
	Retired     bool      `json:"retired" gorm:"default:false"`
	ImageURL    string    `json:"image_url"`

	CountryBornID        *uint `json:"country_born_id,omitempty" gorm:"index"`
	CountryNationalityID *uint `json:"country_nationality_id,omitempty" gorm:"index"`
	CurrentClubID        *uint `json:"current_club_id,omitempty" gorm:"index"`
	PositionID           *uint `json:"position_id,omitempty" gorm:"index"`

	CountryBorn        *Country  `json:"country_born,omitempty" gorm:"foreignKey:CountryBornID"`
	CountryNationality *Country  `json:"country_nationality,omitempty" gorm:"foreignKey:CountryNationalityID"`
	CurrentClub        *Club     `json:"current_club,omitempty" gorm:"foreignKey:CurrentClubID"`
	Position           *Position `json:"position,omitempty" gorm:"foreignKey:PositionID"`
	Timestamps
}
