package services

import (
	"time"

	"hotel-backoffice/models"
	"hotel-backoffice/utils"

	"gorm.io/gorm"
)

// UpcomingWindowDays bounds the check-ins listed on the dashboard.
const UpcomingWindowDays = 7

type UpcomingCheckIn struct {
	ReservationID uint   `json:"reservation_id"`
	StartDate     string `json:"start_date"`
	ClientName    string `json:"client_name"`
	RoomNumber    string `json:"room_number"`
}

type DashboardStats struct {
	Date             string            `json:"date"`
	TotalRooms       int64             `json:"total_rooms"`
	OccupiedRooms    int64             `json:"occupied_rooms"`
	OccupancyRate    float64           `json:"occupancy_rate"`
	AverageRating    float64           `json:"average_rating"`
	UpcomingCheckIns []UpcomingCheckIn `json:"upcoming_checkins"`
}

type DashboardService struct {
	DB      *gorm.DB
	Reviews *ReviewService
	Now     func() time.Time
}

func NewDashboardService(db *gorm.DB, reviews *ReviewService) *DashboardService {
	return &DashboardService{DB: db, Reviews: reviews, Now: time.Now}
}

func (s *DashboardService) Stats() (*DashboardStats, error) {
	today := utils.Today(s.Now())
	stats := &DashboardStats{Date: today, UpcomingCheckIns: []UpcomingCheckIn{}}

	if err := s.DB.Model(&models.Room{}).Count(&stats.TotalRooms).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Reservation{}).
		Where("status = ? AND start_date <= ? AND end_date > ?", models.ReservationConfirmed, today, today).
		Distinct("room_id").Count(&stats.OccupiedRooms).Error; err != nil {
		return nil, err
	}
	if stats.TotalRooms > 0 {
		stats.OccupancyRate = roundCents(float64(stats.OccupiedRooms) / float64(stats.TotalRooms) * 100)
	}

	avg, err := s.Reviews.AverageRating()
	if err != nil {
		return nil, err
	}
	if avg != nil {
		stats.AverageRating = *avg
	}

	var upcoming []models.Reservation
	if err := s.DB.Preload("Client").Preload("Room").
		Where("status = ? AND start_date >= ? AND start_date <= ?",
			models.ReservationConfirmed, today, utils.AddDays(today, UpcomingWindowDays)).
		Order("start_date ASC, id ASC").Limit(5).
		Find(&upcoming).Error; err != nil {
		return nil, err
	}
	for _, r := range upcoming {
		stats.UpcomingCheckIns = append(stats.UpcomingCheckIns, UpcomingCheckIn{
			ReservationID: r.ID,
			StartDate:     r.StartDate,
			ClientName:    r.Client.FullName(),
			RoomNumber:    r.Room.RoomNumber,
		})
	}
	return stats, nil
}
