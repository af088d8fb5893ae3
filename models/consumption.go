package models

import "time"

const (
	ConsumptionEnergy  = "Energy"
	ConsumptionWater   = "Water"
	ConsumptionGas     = "Gas"
	ConsumptionMinibar = "Minibar"
)

func IsConsumptionType(t string) bool {
	switch t {
	case ConsumptionEnergy, ConsumptionWater, ConsumptionGas, ConsumptionMinibar:
		return true
	}
	return false
}

type Consumption struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RoomID        uint      `gorm:"column:room_id;index:idx_consumption_room_date;not null" json:"room_id"`
	ReservationID *uint     `gorm:"column:reservation_id;index" json:"reservation_id,omitempty"`
	Type          string    `gorm:"column:type;size:20;not null" json:"type"`
	ReadingDate   string    `gorm:"column:reading_date;size:10;index:idx_consumption_room_date;not null" json:"reading_date"`
	Value         float64   `gorm:"column:value;not null" json:"value"`
	Unit          string    `gorm:"column:unit;size:20;not null" json:"unit"`
	UnitCost      float64   `gorm:"column:unit_cost;not null" json:"unit_cost"`
	CreatedAt     time.Time `json:"created_at"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
