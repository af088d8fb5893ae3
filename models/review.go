package models

import "time"

type Review struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ClientID       uint      `gorm:"column:client_id;index;not null" json:"client_id"`
	ReservationID  uint      `gorm:"column:reservation_id;uniqueIndex;not null" json:"reservation_id"`
	Rating         int       `gorm:"column:rating;not null" json:"rating"`
	Comment        string    `gorm:"column:comment;type:text;not null" json:"comment"`
	SubmissionDate string    `gorm:"column:submission_date;size:10;not null" json:"submission_date"`
	Moderated      bool      `gorm:"column:moderated;not null;default:false" json:"moderated"`
	CreatedAt      time.Time `json:"created_at"`

	Client Client `gorm:"foreignKey:ClientID;references:ID" json:"client,omitempty"`
}
