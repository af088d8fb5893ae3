package models

import "time"

const (
	InvoicePaid          = "Paid"
	InvoiceUnpaid        = "Unpaid"
	InvoicePartiallyPaid = "PartiallyPaid"
)

const (
	PaymentCard     = "Card"
	PaymentCash     = "Cash"
	PaymentTransfer = "Transfer"
	PaymentCheque   = "Cheque"
)

func IsInvoiceStatus(s string) bool {
	return s == InvoicePaid || s == InvoiceUnpaid || s == InvoicePartiallyPaid
}

func IsPaymentMethod(m string) bool {
	switch m {
	case PaymentCard, PaymentCash, PaymentTransfer, PaymentCheque:
		return true
	}
	return false
}

// Invoice keeps the raw charge components; only Total is rounded.
type Invoice struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ReservationID     uint      `gorm:"column:reservation_id;uniqueIndex;not null" json:"reservation_id"`
	RoomCharge        float64   `gorm:"column:room_charge;not null" json:"room_charge"`
	ServicesCharge    float64   `gorm:"column:services_charge;not null" json:"services_charge"`
	ConsumptionCharge float64   `gorm:"column:consumption_charge;not null" json:"consumption_charge"`
	Total             float64   `gorm:"column:total;not null" json:"total"`
	EmissionDate      string    `gorm:"column:emission_date;size:10;not null" json:"emission_date"`
	Status            string    `gorm:"column:status;size:20;not null;default:Unpaid" json:"status"`
	PaymentMethod     *string   `gorm:"column:payment_method;size:20" json:"payment_method"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Reservation *Reservation `gorm:"foreignKey:ReservationID;references:ID" json:"reservation,omitempty"`
}
