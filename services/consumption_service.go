package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"hotel-backoffice/models"
	"hotel-backoffice/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ConsumptionService struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewConsumptionService(db *gorm.DB, log *logrus.Logger) *ConsumptionService {
	return &ConsumptionService{DB: db, Log: log}
}

// RecordConsumptionInput carries the raw form values; Value and UnitCost are
// parsed here so malformed numbers map to ErrInvalidValue.
type RecordConsumptionInput struct {
	RoomID      uint
	Type        string
	ReadingDate string
	Value       string
	Unit        string
	UnitCost    string
}

func parseNonNegative(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// Record stores a utility reading and links it to the most recent confirmed
// reservation whose stay covers the reading date, when there is one.
func (s *ConsumptionService) Record(actor Actor, in RecordConsumptionInput) (*models.Consumption, error) {
	in.Type = strings.TrimSpace(in.Type)
	in.ReadingDate = strings.TrimSpace(in.ReadingDate)
	in.Unit = strings.TrimSpace(in.Unit)
	if !models.IsConsumptionType(in.Type) {
		return nil, fmt.Errorf("%w: unknown consumption type %q", ErrInvalidInput, in.Type)
	}
	if !utils.IsDate(in.ReadingDate) {
		return nil, fmt.Errorf("%w: reading date must be formatted YYYY-MM-DD", ErrInvalidInput)
	}
	if in.Unit == "" {
		return nil, fmt.Errorf("%w: unit is required", ErrInvalidInput)
	}
	value, okV := parseNonNegative(in.Value)
	cost, okC := parseNonNegative(in.UnitCost)
	if !okV || !okC {
		return nil, ErrInvalidValue
	}

	var c models.Consumption
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, in.RoomID).Error; err != nil {
			return notFoundOr(err, "room", in.RoomID)
		}

		var linked []uint
		if err := tx.Model(&models.Reservation{}).
			Where("room_id = ? AND status = ? AND start_date <= ? AND end_date > ?",
				room.ID, models.ReservationConfirmed, in.ReadingDate, in.ReadingDate).
			Order("id DESC").Limit(1).
			Pluck("id", &linked).Error; err != nil {
			return err
		}

		c = models.Consumption{
			RoomID:      room.ID,
			Type:        in.Type,
			ReadingDate: in.ReadingDate,
			Value:       value,
			Unit:        in.Unit,
			UnitCost:    cost,
		}
		if len(linked) > 0 {
			c.ReservationID = &linked[0]
		}
		if err := tx.Create(&c).Error; err != nil {
			return err
		}
		c.Room = room
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.WithFields(logrus.Fields{
		"consumption_id": c.ID,
		"room_id":        c.RoomID,
		"type":           c.Type,
		"linked":         c.ReservationID != nil,
		"by":             actor.Username,
	}).Info("consumption recorded")
	return &c, nil
}

// List returns readings newest first, each with its room.
func (s *ConsumptionService) List(roomID *uint) ([]models.Consumption, error) {
	q := s.DB.Preload("Room").Order("reading_date DESC, id DESC")
	if roomID != nil {
		q = q.Where("room_id = ?", *roomID)
	}
	var list []models.Consumption
	err := q.Find(&list).Error
	return list, err
}
