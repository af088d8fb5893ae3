package models

import "time"

const (
	ReservationConfirmed = "Confirmed"
	ReservationCancelled = "Cancelled"
	ReservationCompleted = "Completed"
	ReservationPending   = "Pending"
)

// Reservation dates are ISO calendar dates (YYYY-MM-DD); EndDate is exclusive.
type Reservation struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ReferenceCode    string    `gorm:"column:reference_code;uniqueIndex;size:64" json:"reference_code"`
	ClientID         uint      `gorm:"column:client_id;index;not null" json:"client_id"`
	RoomID           uint      `gorm:"column:room_id;index:idx_reservation_room_dates;not null" json:"room_id"`
	TariffID         uint      `gorm:"column:tariff_id;index;not null" json:"tariff_id"`
	StartDate        string    `gorm:"column:start_date;size:10;index:idx_reservation_room_dates;not null" json:"start_date"`
	EndDate          string    `gorm:"column:end_date;size:10;index:idx_reservation_room_dates;not null" json:"end_date"`
	AppliedNightRate float64   `gorm:"column:applied_night_rate;not null" json:"applied_night_rate"`
	Status           string    `gorm:"column:status;size:20;index;not null" json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Client   Client               `gorm:"foreignKey:ClientID;references:ID" json:"client,omitempty"`
	Room     Room                 `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Tariff   Tariff               `gorm:"foreignKey:TariffID;references:ID" json:"tariff,omitempty"`
	Services []ReservationService `gorm:"foreignKey:ReservationID" json:"services,omitempty"`
}

// StatusOn reports the status as seen on the given day: a confirmed stay whose
// end date has passed is completed even before reconciliation persists it.
func (r Reservation) StatusOn(today string) string {
	if r.Status == ReservationConfirmed && r.EndDate < today {
		return ReservationCompleted
	}
	return r.Status
}
