package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"hotel-backoffice/models"
	"hotel-backoffice/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomService struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewRoomService(db *gorm.DB, log *logrus.Logger) *RoomService {
	return &RoomService{DB: db, Log: log}
}

type RoomInput struct {
	RoomNumber     string  `json:"room_number" binding:"required"`
	Type           string  `json:"type" binding:"required"`
	BaseNightPrice float64 `json:"base_night_price" binding:"gte=0"`
	Status         string  `json:"status"`
}

func (in *RoomInput) validate(creating bool) error {
	in.RoomNumber = strings.TrimSpace(in.RoomNumber)
	in.Type = strings.TrimSpace(in.Type)
	if in.RoomNumber == "" {
		return fmt.Errorf("%w: room number is required", ErrInvalidInput)
	}
	if !models.IsRoomType(in.Type) {
		return fmt.Errorf("%w: unknown room type %q", ErrInvalidInput, in.Type)
	}
	if in.BaseNightPrice < 0 || math.IsNaN(in.BaseNightPrice) || math.IsInf(in.BaseNightPrice, 0) {
		return fmt.Errorf("%w: base price must be a non-negative number", ErrInvalidInput)
	}
	if creating && in.Status == "" {
		in.Status = models.RoomStatusFree
	}
	if creating && in.Status != models.RoomStatusFree && in.Status != models.RoomStatusOccupied && in.Status != models.RoomStatusCleaning {
		return fmt.Errorf("%w: unknown room status %q", ErrInvalidInput, in.Status)
	}
	return nil
}

func (s *RoomService) List() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Order("room_number").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) Get(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		return nil, notFoundOr(err, "room", id)
	}
	return &room, nil
}

// Available lists rooms without a confirmed stay overlapping [start, end).
func (s *RoomService) Available(start, end string) ([]models.Room, error) {
	if !utils.IsDate(start) || !utils.IsDate(end) {
		return nil, fmt.Errorf("%w: dates must be formatted YYYY-MM-DD", ErrInvalidInput)
	}
	if start >= end {
		return nil, ErrInvalidDates
	}
	busy := s.DB.Model(&models.Reservation{}).Select("room_id").
		Where("status = ? AND start_date < ? AND end_date > ?", models.ReservationConfirmed, end, start)
	var rooms []models.Room
	err := s.DB.Where("id NOT IN (?)", busy).Order("room_number").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) Create(in RoomInput) (*models.Room, error) {
	if err := in.validate(true); err != nil {
		return nil, err
	}
	room := models.Room{
		RoomNumber:     in.RoomNumber,
		Type:           in.Type,
		BaseNightPrice: in.BaseNightPrice,
		Status:         in.Status,
	}
	if err := s.DB.Create(&room).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: room number %q already exists", ErrConflict, room.RoomNumber)
		}
		return nil, err
	}
	return &room, nil
}

// Update edits the catalog fields of a room. Status is left untouched.
func (s *RoomService) Update(id uint, in RoomInput) (*models.Room, error) {
	if err := in.validate(false); err != nil {
		return nil, err
	}
	room, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(map[string]interface{}{
		"room_number":      in.RoomNumber,
		"type":             in.Type,
		"base_night_price": in.BaseNightPrice,
	}).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: room number %q already exists", ErrConflict, in.RoomNumber)
		}
		return nil, err
	}
	room.RoomNumber, room.Type, room.BaseNightPrice = in.RoomNumber, in.Type, in.BaseNightPrice
	return room, nil
}

// Delete removes a room and its readings. Rooms referenced by a reservation
// cannot be deleted.
func (s *RoomService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, id).Error; err != nil {
			return notFoundOr(err, "room", id)
		}
		var refs int64
		if err := tx.Model(&models.Reservation{}).Where("room_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("%w: room %s has reservations", ErrConflict, room.RoomNumber)
		}
		if err := tx.Where("room_id = ?", id).Delete(&models.Consumption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Room{}, id).Error
	})
}

// MarkCleaned ends housekeeping: Cleaning -> Free.
func (s *RoomService) MarkCleaned(ctx context.Context, actor Actor, id uint) (*models.Room, error) {
	var room models.Room
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, id).Error; err != nil {
			return notFoundOr(err, "room", id)
		}
		if room.Status != models.RoomStatusCleaning {
			return fmt.Errorf("%w: room %s is %s, not being cleaned", ErrInvalidState, room.RoomNumber, room.Status)
		}
		if err := tx.Model(&models.Room{}).Where("id = ?", id).Update("status", models.RoomStatusFree).Error; err != nil {
			return err
		}
		room.Status = models.RoomStatusFree
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.WithFields(logrus.Fields{"room_id": room.ID, "by": actor.Username}).Info("room cleaned")
	return &room, nil
}
