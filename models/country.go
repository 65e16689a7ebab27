package models

// Country is the root dimension table — almost everything references it.
type Country struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"uniqueIndex;not null"`
	FlagEmoji string `json:"flag_emoji"`
	Timestamps
}

type City struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null"`
	CountryID uint   `json:"country_id" gorm:"index;not null"`

	Country Country `json:"country,omitempty" gorm:"foreignKey:CountryID"`
	Timestamps
}
