package models

const (
	PositionTypeGoalkeeper = "goalkeeper"
	PositionTypeDefender   = "defender"
	PositionTypeMidfielder = "midfielder"
	PositionTypeAttacker   = "attacker"
)

type Position struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
	Type string `json:"type"` // goalkeeper | defender | midfielder | attacker
	Timestamps
}
