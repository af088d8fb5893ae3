package services

import (
	"context"

	"hotel-backoffice/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReconcileResult struct {
	Completed []uint `json:"completed_reservations"`
	Cleaning  []uint `json:"rooms_to_clean"`
	Occupied  []uint `json:"rooms_checked_in"`
}

// Reconcile persists the status changes implied by the calendar:
// confirmed stays that ended before today become Completed and their rooms
// go to Cleaning; free rooms with a confirmed stay covering today become
// Occupied. Running it twice on the same day changes nothing the second time.
func (s *ReservationService) Reconcile(ctx context.Context) (ReconcileResult, error) {
	today := s.today()
	result := ReconcileResult{Completed: []uint{}, Cleaning: []uint{}, Occupied: []uint{}}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ended []models.Reservation
		if err := tx.Where("status = ? AND end_date < ?", models.ReservationConfirmed, today).
			Order("id").Find(&ended).Error; err != nil {
			return err
		}

		roomSeen := map[uint]bool{}
		for _, r := range ended {
			result.Completed = append(result.Completed, r.ID)
			if !roomSeen[r.RoomID] {
				roomSeen[r.RoomID] = true
				result.Cleaning = append(result.Cleaning, r.RoomID)
			}
		}
		if len(result.Completed) > 0 {
			if err := tx.Model(&models.Reservation{}).Where("id IN ?", result.Completed).
				Update("status", models.ReservationCompleted).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Room{}).Where("id IN ?", result.Cleaning).
				Update("status", models.RoomStatusCleaning).Error; err != nil {
				return err
			}
			for _, r := range ended {
				after := r
				after.Status = models.ReservationCompleted
				if err := Audit(tx, SystemActor, "reservation.complete", "reservation", r.ID, r, after); err != nil {
					return err
				}
			}
		}

		covered := tx.Model(&models.Reservation{}).Select("room_id").
			Where("status = ? AND start_date <= ? AND end_date > ?", models.ReservationConfirmed, today, today)
		if err := tx.Model(&models.Room{}).
			Where("status = ? AND id IN (?)", models.RoomStatusFree, covered).
			Pluck("id", &result.Occupied).Error; err != nil {
			return err
		}
		if len(result.Occupied) > 0 {
			if err := tx.Model(&models.Room{}).Where("id IN ?", result.Occupied).
				Update("status", models.RoomStatusOccupied).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	if len(result.Completed)+len(result.Occupied) > 0 {
		s.Log.WithFields(logrus.Fields{
			"completed": len(result.Completed),
			"cleaning":  len(result.Cleaning),
			"occupied":  len(result.Occupied),
			"day":       today,
		}).Info("reservations reconciled")
	}
	for _, id := range result.Completed {
		publish(ctx, s.Events, s.Log, NewEvent(EventReservationCompleted, id, nil))
	}
	return result, nil
}
