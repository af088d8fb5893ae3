package models

import "time"

const (
	RoomTypeSimple    = "Simple"
	RoomTypeDouble    = "Double"
	RoomTypeSuite     = "Suite"
	RoomTypeFamiliale = "Familiale"
)

// Room status values. Status is owned by the reservation workflow.
const (
	RoomStatusFree     = "Free"
	RoomStatusOccupied = "Occupied"
	RoomStatusCleaning = "Cleaning"
)

var RoomTypes = []string{RoomTypeSimple, RoomTypeDouble, RoomTypeSuite, RoomTypeFamiliale}

type Room struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RoomNumber     string    `gorm:"column:room_number;uniqueIndex;size:20;not null" json:"room_number"`
	Type           string    `gorm:"column:type;size:20;not null" json:"type"`
	BaseNightPrice float64   `gorm:"column:base_night_price;not null" json:"base_night_price"`
	Status         string    `gorm:"column:status;size:20;not null;default:Free" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func IsRoomType(t string) bool {
	for _, v := range RoomTypes {
		if v == t {
			return true
		}
	}
	return false
}
