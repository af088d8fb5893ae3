package models

import "time"

// ConditionNone marks a tariff that applies to every client.
const ConditionNone = "None"

type Tariff struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"column:name;uniqueIndex;size:100;not null" json:"name"`
	Description         string    `gorm:"column:description;type:text" json:"description"`
	ReductionPercentage float64   `gorm:"column:reduction_percentage;not null;default:0" json:"reduction_percentage"`
	Condition           string    `gorm:"column:condition_text;size:100;not null;default:None" json:"condition"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
