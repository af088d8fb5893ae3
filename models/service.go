package models

import "time"

const (
	ServiceAvailable   = "Available"
	ServiceUnavailable = "Unavailable"
)

// Service is an extra that can be attached to a reservation (breakfast, spa, shuttle).
type Service struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"column:name;uniqueIndex;size:100;not null" json:"name"`
	Description  string    `gorm:"column:description;type:text" json:"description"`
	Price        float64   `gorm:"column:price;not null" json:"price"`
	Availability string    `gorm:"column:availability;size:20;not null;default:Available" json:"availability"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ReservationService links a service to a reservation with a quantity.
type ReservationService struct {
	ReservationID uint    `gorm:"primaryKey;column:reservation_id" json:"reservation_id"`
	ServiceID     uint    `gorm:"primaryKey;column:service_id" json:"service_id"`
	Quantity      int     `gorm:"column:quantity;not null;default:1" json:"quantity"`
	ServiceDate   *string `gorm:"column:service_date;size:10" json:"service_date,omitempty"`

	Service Service `gorm:"foreignKey:ServiceID;references:ID" json:"service,omitempty"`
}
