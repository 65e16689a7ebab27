package models

import "time"

type Club struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"not null;index"`
	Slug        string     `json:"slug" gorm:"index"`
	Nickname    string     `json:"nickname"`
	Founded     *time.Time `json:"founded,omitempty"`
	StadiumName string     `json:"stadium_name"`
	LogoURL     string     `json:"logo_url"`
	CountryID   uint       `json:"country_id" gorm:"index;not null"`
	CityID      *uint      `json:"city_id,omitempty" gorm:"index"`

	Country Country `json:"country,omitempty" gorm:"foreignKey:CountryID"`
	City    *City   `json:"city,omitempty" gorm:"foreignKey:CityID"`
	Timestamps
}
