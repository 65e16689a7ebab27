package models

const (
	CompetitionTypeLeague        = "league"
	CompetitionTypeCup           = "cup"
	CompetitionTypeInternational = "international"
)

type Competition struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null"`
	Slug      string `json:"slug" gorm:"index"`
	Type      string `json:"type"` // league | cup | international
	CountryID uint   `json:"country_id" gorm:"index;not null"`

	Country Country `json:"country,omitempty" gorm:"foreignKey:CountryID"`
	Timestamps
}
