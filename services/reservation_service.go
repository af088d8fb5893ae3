package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-backoffice/models"
	"hotel-backoffice/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationService owns the reservation lifecycle and the room status
// transitions it implies.
type ReservationService struct {
	DB     *gorm.DB
	Log    *logrus.Logger
	Events EventPublisher
	Locker RoomLocker
	Now    func() time.Time
}

func NewReservationService(db *gorm.DB, log *logrus.Logger, events EventPublisher, locker RoomLocker) *ReservationService {
	if events == nil {
		events = NoopPublisher{}
	}
	if locker == nil {
		locker = noopLocker{}
	}
	return &ReservationService{DB: db, Log: log, Events: events, Locker: locker, Now: time.Now}
}

func (s *ReservationService) today() string {
	return utils.Today(s.Now())
}

type CreateReservationInput struct {
	ClientID  uint
	RoomID    uint
	TariffID  uint
	StartDate string
	EndDate   string
}

// Create books a room for [StartDate, EndDate). The overlap check and the
// insert run in one transaction holding the room row lock.
func (s *ReservationService) Create(ctx context.Context, actor Actor, in CreateReservationInput) (*models.Reservation, error) {
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)
	if !utils.IsDate(in.StartDate) || !utils.IsDate(in.EndDate) {
		return nil, fmt.Errorf("%w: dates must be formatted YYYY-MM-DD", ErrInvalidInput)
	}
	today := s.today()
	if in.StartDate < today || in.StartDate >= in.EndDate {
		return nil, ErrInvalidDates
	}

	release, err := s.Locker.Lock(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	defer release()

	var res models.Reservation
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, in.RoomID).Error; err != nil {
			return notFoundOr(err, "room", in.RoomID)
		}
		var tariff models.Tariff
		if err := tx.First(&tariff, in.TariffID).Error; err != nil {
			return notFoundOr(err, "tariff", in.TariffID)
		}
		var client models.Client
		if err := tx.First(&client, in.ClientID).Error; err != nil {
			return notFoundOr(err, "client", in.ClientID)
		}

		var overlapping int64
		if err := tx.Model(&models.Reservation{}).
			Where("room_id = ? AND status = ? AND start_date < ? AND end_date > ?",
				room.ID, models.ReservationConfirmed, in.EndDate, in.StartDate).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return ErrRoomConflict
		}

		res = models.Reservation{
			ReferenceCode:    uuid.NewString(),
			ClientID:         client.ID,
			RoomID:           room.ID,
			TariffID:         tariff.ID,
			StartDate:        in.StartDate,
			EndDate:          in.EndDate,
			AppliedNightRate: CalculateAppliedPrice(room.BaseNightPrice, tariff.ReductionPercentage),
			Status:           models.ReservationConfirmed,
		}
		if err := tx.Create(&res).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		if in.StartDate == today {
			if err := tx.Model(&models.Room{}).Where("id = ?", room.ID).
				Update("status", models.RoomStatusOccupied).Error; err != nil {
				return fmt.Errorf("failed to update room %d status: %w", room.ID, err)
			}
		}

		res.Client = client
		res.Room = room
		res.Tariff = tariff
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.WithFields(logrus.Fields{
		"reservation_id": res.ID,
		"room_id":        res.RoomID,
		"start":          res.StartDate,
		"end":            res.EndDate,
		"rate":           res.AppliedNightRate,
		"by":             actor.Username,
	}).Info("reservation created")
	publish(ctx, s.Events, s.Log, NewEvent(EventReservationCreated, res.ID, res))
	return &res, nil
}

type ReservationFilter struct {
	ClientID *uint
	RoomID   *uint
	Status   string
}

// List returns reservations newest stay first. Each status is the effective
// one for today; nothing is written. Clients only see their own stays.
func (s *ReservationService) List(actor Actor, f ReservationFilter) ([]models.Reservation, error) {
	q := s.DB.Preload("Client").Preload("Room").Preload("Tariff").
		Order("start_date DESC, id DESC")
	if actor.IsClient() {
		if actor.ClientID == nil {
			return []models.Reservation{}, nil
		}
		q = q.Where("client_id = ?", *actor.ClientID)
	} else if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.RoomID != nil {
		q = q.Where("room_id = ?", *f.RoomID)
	}

	var list []models.Reservation
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}

	today := s.today()
	out := make([]models.Reservation, 0, len(list))
	for _, r := range list {
		r.Status = r.StatusOn(today)
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Get loads one reservation with its attached services.
func (s *ReservationService) Get(actor Actor, id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.DB.Preload("Client").Preload("Room").Preload("Tariff").Preload("Services.Service").
		First(&r, id).Error; err != nil {
		return nil, notFoundOr(err, "reservation", id)
	}
	if actor.IsClient() && (actor.ClientID == nil || *actor.ClientID != r.ClientID) {
		return nil, fmt.Errorf("%w: reservation %d", ErrNotFound, id)
	}
	r.Status = r.StatusOn(s.today())
	return &r, nil
}

// Cancel moves a confirmed reservation to Cancelled and frees the room when
// no other confirmed stay covers today.
func (s *ReservationService) Cancel(ctx context.Context, actor Actor, id uint) (*models.Reservation, error) {
	today := s.today()
	var res models.Reservation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&res, id).Error; err != nil {
			return notFoundOr(err, "reservation", id)
		}
		if st := res.StatusOn(today); st != models.ReservationConfirmed {
			return fmt.Errorf("%w: reservation %d is %s and cannot be cancelled", ErrInvalidState, id, st)
		}
		before := res

		if err := tx.Model(&models.Reservation{}).Where("id = ?", res.ID).
			Update("status", models.ReservationCancelled).Error; err != nil {
			return err
		}
		res.Status = models.ReservationCancelled

		var current int64
		if err := tx.Model(&models.Reservation{}).
			Where("room_id = ? AND id <> ? AND status = ? AND start_date <= ? AND end_date > ?",
				res.RoomID, res.ID, models.ReservationConfirmed, today, today).
			Count(&current).Error; err != nil {
			return err
		}
		if current == 0 {
			if err := tx.Model(&models.Room{}).
				Where("id = ? AND status <> ?", res.RoomID, models.RoomStatusCleaning).
				Update("status", models.RoomStatusFree).Error; err != nil {
				return err
			}
		}

		return Audit(tx, actor, "reservation.cancel", "reservation", res.ID, before, res)
	})
	if err != nil {
		return nil, err
	}

	s.Log.WithFields(logrus.Fields{"reservation_id": res.ID, "by": actor.Username}).Info("reservation cancelled")
	publish(ctx, s.Events, s.Log, NewEvent(EventReservationCancelled, res.ID, nil))
	return &res, nil
}

// AttachService adds quantity units of a service to a reservation that is
// still open for billing.
func (s *ReservationService) AttachService(ctx context.Context, actor Actor, reservationID, serviceID uint, quantity int, serviceDate *string) (*models.ReservationService, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if serviceDate != nil && !utils.IsDate(*serviceDate) {
		return nil, fmt.Errorf("%w: service date must be formatted YYYY-MM-DD", ErrInvalidInput)
	}

	var link models.ReservationService
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res models.Reservation
		if err := tx.First(&res, reservationID).Error; err != nil {
			return notFoundOr(err, "reservation", reservationID)
		}
		var svc models.Service
		if err := tx.First(&svc, serviceID).Error; err != nil {
			return notFoundOr(err, "service", serviceID)
		}
		if st := res.StatusOn(s.today()); st != models.ReservationConfirmed && st != models.ReservationCompleted {
			return fmt.Errorf("%w: reservation %d is %s", ErrInvalidState, res.ID, st)
		}
		var invoiced int64
		if err := tx.Model(&models.Invoice{}).Where("reservation_id = ?", res.ID).Count(&invoiced).Error; err != nil {
			return err
		}
		if invoiced > 0 {
			return fmt.Errorf("%w: reservation %d is already invoiced", ErrInvalidState, res.ID)
		}
		if svc.Availability != models.ServiceAvailable {
			return fmt.Errorf("%w: service %q is unavailable", ErrInvalidState, svc.Name)
		}

		err := tx.Where("reservation_id = ? AND service_id = ?", res.ID, svc.ID).First(&link).Error
		switch {
		case err == nil:
			link.Quantity += quantity
			if serviceDate != nil {
				link.ServiceDate = serviceDate
			}
			if err := tx.Model(&models.ReservationService{}).Where("reservation_id = ? AND service_id = ?", res.ID, svc.ID).
				Updates(map[string]interface{}{"quantity": link.Quantity, "service_date": link.ServiceDate}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			link = models.ReservationService{ReservationID: res.ID, ServiceID: svc.ID, Quantity: quantity, ServiceDate: serviceDate}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		default:
			return err
		}
		link.Service = svc
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.WithFields(logrus.Fields{
		"reservation_id": reservationID,
		"service_id":     serviceID,
		"quantity":       link.Quantity,
		"by":             actor.Username,
	}).Info("service attached")
	return &link, nil
}

// notFoundOr maps gorm's missing-record error to ErrNotFound.
func notFoundOr(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, what, id)
	}
	return err
}
