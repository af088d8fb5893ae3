package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel-backoffice/models"
	"hotel-backoffice/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceService struct {
	DB     *gorm.DB
	Log    *logrus.Logger
	Events EventPublisher
	Now    func() time.Time
}

func NewInvoiceService(db *gorm.DB, log *logrus.Logger, events EventPublisher) *InvoiceService {
	if events == nil {
		events = NoopPublisher{}
	}
	return &InvoiceService{DB: db, Log: log, Events: events, Now: time.Now}
}

// Generate bills a reservation: nights at the applied rate, attached services
// and the room's consumption readings dated inside the stay.
func (s *InvoiceService) Generate(ctx context.Context, actor Actor, reservationID uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Invoice{}).Where("reservation_id = ?", reservationID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyExists
		}

		var res models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&res, reservationID).Error; err != nil {
			return notFoundOr(err, "reservation", reservationID)
		}
		if res.Status == models.ReservationCancelled {
			return fmt.Errorf("%w: reservation %d is cancelled", ErrInvalidState, res.ID)
		}

		nights, err := utils.DaysBetween(res.StartDate, res.EndDate)
		if err != nil {
			return fmt.Errorf("reservation %d has malformed dates: %w", res.ID, err)
		}
		if nights < 1 {
			nights = 1
		}

		var extras struct{ Total float64 }
		if err := tx.Table("reservation_services AS rs").
			Select("COALESCE(SUM(sv.price * rs.quantity), 0) AS total").
			Joins("JOIN services sv ON sv.id = rs.service_id").
			Where("rs.reservation_id = ?", res.ID).
			Scan(&extras).Error; err != nil {
			return err
		}

		var usage struct{ Total float64 }
		if err := tx.Model(&models.Consumption{}).
			Select("COALESCE(SUM(value * unit_cost), 0) AS total").
			Where("room_id = ? AND reading_date >= ? AND reading_date < ?", res.RoomID, res.StartDate, res.EndDate).
			Scan(&usage).Error; err != nil {
			return err
		}

		roomCharge := float64(nights) * res.AppliedNightRate
		inv = models.Invoice{
			ReservationID:     res.ID,
			RoomCharge:        roomCharge,
			ServicesCharge:    extras.Total,
			ConsumptionCharge: usage.Total,
			Total:             roundCents(roomCharge + extras.Total + usage.Total),
			EmissionDate:      utils.Today(s.Now()),
			Status:            models.InvoiceUnpaid,
		}
		if err := tx.Create(&inv).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.WithFields(logrus.Fields{
		"invoice_id":     inv.ID,
		"reservation_id": inv.ReservationID,
		"total":          inv.Total,
		"by":             actor.Username,
	}).Info("invoice generated")
	publish(ctx, s.Events, s.Log, NewEvent(EventInvoiceGenerated, inv.ID, inv))
	return &inv, nil
}

// Update sets the payment status. Paid needs a method; Unpaid clears it.
func (s *InvoiceService) Update(ctx context.Context, actor Actor, id uint, status, method string) (*models.Invoice, error) {
	status = strings.TrimSpace(status)
	method = strings.TrimSpace(method)
	if !models.IsInvoiceStatus(status) {
		return nil, fmt.Errorf("%w: unknown invoice status %q", ErrInvalidInput, status)
	}
	if method != "" && !models.IsPaymentMethod(method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, method)
	}
	if status == models.InvoicePaid && method == "" {
		return nil, fmt.Errorf("%w: a payment method is required to mark an invoice paid", ErrInvalidInput)
	}

	var pm *string
	if status != models.InvoiceUnpaid && method != "" {
		pm = &method
	}

	var inv models.Invoice
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, id).Error; err != nil {
			return notFoundOr(err, "invoice", id)
		}
		before := inv
		if err := tx.Model(&models.Invoice{}).Where("id = ?", inv.ID).
			Updates(map[string]interface{}{"status": status, "payment_method": pm}).Error; err != nil {
			return err
		}
		inv.Status = status
		inv.PaymentMethod = pm
		return Audit(tx, actor, "invoice.update", "invoice", inv.ID, before, inv)
	})
	if err != nil {
		return nil, err
	}

	if inv.Status == models.InvoicePaid {
		publish(ctx, s.Events, s.Log, NewEvent(EventInvoicePaid, inv.ID, nil))
	}
	return &inv, nil
}

// InvoiceView is an invoice joined with the data shown on the billing screen.
type InvoiceView struct {
	models.Invoice
	ClientName string `json:"client_name"`
	Email      string `json:"email"`
	RoomNumber string `json:"room_number"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (s *InvoiceService) List() ([]InvoiceView, error) {
	var invoices []models.Invoice
	if err := s.DB.Preload("Reservation.Client").Preload("Reservation.Room").
		Order("emission_date DESC, id DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	out := make([]InvoiceView, 0, len(invoices))
	for _, inv := range invoices {
		view := InvoiceView{}
		if r := inv.Reservation; r != nil {
			view.ClientName = r.Client.FullName()
			view.Email = r.Client.Email
			view.RoomNumber = r.Room.RoomNumber
			view.StartDate = r.StartDate
			view.EndDate = r.EndDate
		}
		inv.Reservation = nil
		view.Invoice = inv
		out = append(out, view)
	}
	return out, nil
}

func (s *InvoiceService) Get(id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.DB.Preload("Reservation.Client").Preload("Reservation.Room").
		Preload("Reservation.Services.Service").First(&inv, id).Error; err != nil {
		return nil, notFoundOr(err, "invoice", id)
	}
	return &inv, nil
}

// AwaitingInvoice lists confirmed or completed reservations without an invoice.
func (s *InvoiceService) AwaitingInvoice() ([]models.Reservation, error) {
	billed := s.DB.Model(&models.Invoice{}).Select("reservation_id")
	var list []models.Reservation
	if err := s.DB.Preload("Client").Preload("Room").
		Where("status IN ? AND id NOT IN (?)", []string{models.ReservationConfirmed, models.ReservationCompleted}, billed).
		Order("end_date DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	today := utils.Today(s.Now())
	for i := range list {
		list[i].Status = list[i].StatusOn(today)
	}
	return list, nil
}
