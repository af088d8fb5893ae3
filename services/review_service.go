package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-backoffice/models"
	"hotel-backoffice/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReviewService struct {
	DB     *gorm.DB
	Log    *logrus.Logger
	Events EventPublisher
	Now    func() time.Time
}

func NewReviewService(db *gorm.DB, log *logrus.Logger, events EventPublisher) *ReviewService {
	if events == nil {
		events = NoopPublisher{}
	}
	return &ReviewService{DB: db, Log: log, Events: events, Now: time.Now}
}

// Submit stores an unmoderated review of a completed stay owned by the actor.
func (s *ReviewService) Submit(ctx context.Context, actor Actor, reservationID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, fmt.Errorf("%w: comment is required", ErrInvalidInput)
	}
	if actor.ClientID == nil {
		return nil, fmt.Errorf("%w: only clients can review their stays", ErrUnauthorized)
	}

	today := utils.Today(s.Now())
	var rev models.Review
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res models.Reservation
		err := tx.Where("id = ? AND client_id = ?", reservationID, *actor.ClientID).First(&res).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err != nil || res.StatusOn(today) != models.ReservationCompleted {
			return fmt.Errorf("%w: reservation %d is not a completed stay of yours", ErrUnauthorized, reservationID)
		}

		var reviewed int64
		if err := tx.Model(&models.Review{}).Where("reservation_id = ?", res.ID).Count(&reviewed).Error; err != nil {
			return err
		}
		if reviewed > 0 {
			return ErrDuplicateReview
		}

		rev = models.Review{
			ClientID:       *actor.ClientID,
			ReservationID:  res.ID,
			Rating:         rating,
			Comment:        comment,
			SubmissionDate: today,
			Moderated:      false,
		}
		if err := tx.Create(&rev).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicateReview
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Log.WithFields(logrus.Fields{"review_id": rev.ID, "reservation_id": rev.ReservationID}).Info("review submitted")
	return &rev, nil
}

// Approve marks a pending review as moderated. It reports false, without an
// error, when the review is missing or was already moderated.
func (s *ReviewService) Approve(ctx context.Context, actor Actor, id uint) (bool, error) {
	approved := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Review{}).
			Where("id = ? AND moderated = ?", id, false).
			Update("moderated", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		approved = true
		return Audit(tx, actor, "review.approve", "review", id,
			map[string]bool{"moderated": false}, map[string]bool{"moderated": true})
	})
	if err != nil {
		return false, err
	}
	if approved {
		publish(ctx, s.Events, s.Log, NewEvent(EventReviewApproved, id, nil))
	}
	return approved, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor Actor, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rev models.Review
		if err := tx.First(&rev, id).Error; err != nil {
			return notFoundOr(err, "review", id)
		}
		if err := tx.Delete(&models.Review{}, rev.ID).Error; err != nil {
			return err
		}
		return Audit(tx, actor, "review.delete", "review", rev.ID, rev, nil)
	})
}

type ReviewView struct {
	models.Review
	ClientName string `json:"client_name"`
}

// ReviewableReservation is a completed stay the client has not reviewed yet.
type ReviewableReservation struct {
	ID         uint   `json:"id"`
	EndDate    string `json:"end_date"`
	RoomNumber string `json:"room_number"`
}

type ReviewBoard struct {
	Approved   []ReviewView            `json:"approved"`
	Pending    []ReviewView            `json:"pending"`
	Reviewable []ReviewableReservation `json:"reviewable"`
	Average    *float64                `json:"average_rating"`
}

// Board assembles what the actor may see: approved reviews for everybody,
// the moderation queue for admins, reviewable stays for clients.
func (s *ReviewService) Board(actor Actor) (*ReviewBoard, error) {
	board := &ReviewBoard{Approved: []ReviewView{}, Pending: []ReviewView{}, Reviewable: []ReviewableReservation{}}

	var err error
	if board.Approved, err = s.listByModeration(true); err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		if board.Pending, err = s.listByModeration(false); err != nil {
			return nil, err
		}
	}
	if actor.IsClient() && actor.ClientID != nil {
		if board.Reviewable, err = s.reviewable(*actor.ClientID); err != nil {
			return nil, err
		}
	}
	if board.Average, err = s.AverageRating(); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *ReviewService) listByModeration(moderated bool) ([]ReviewView, error) {
	var reviews []models.Review
	if err := s.DB.Preload("Client").Where("moderated = ?", moderated).
		Order("submission_date DESC, id DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	out := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		name := r.Client.FullName()
		r.Client = models.Client{}
		out = append(out, ReviewView{Review: r, ClientName: name})
	}
	return out, nil
}

func (s *ReviewService) reviewable(clientID uint) ([]ReviewableReservation, error) {
	today := utils.Today(s.Now())
	reviewed := s.DB.Model(&models.Review{}).Select("reservation_id")
	var list []models.Reservation
	if err := s.DB.Preload("Room").
		Where("client_id = ? AND id NOT IN (?)", clientID, reviewed).
		Where("status = ? OR (status = ? AND end_date < ?)", models.ReservationCompleted, models.ReservationConfirmed, today).
		Order("end_date DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]ReviewableReservation, 0, len(list))
	for _, r := range list {
		out = append(out, ReviewableReservation{ID: r.ID, EndDate: r.EndDate, RoomNumber: r.Room.RoomNumber})
	}
	return out, nil
}

// AverageRating averages moderated reviews only; nil when there are none.
func (s *ReviewService) AverageRating() (*float64, error) {
	var row struct {
		AvgRating float64
		Reviews   int64
	}
	if err := s.DB.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS reviews").
		Where("moderated = ?", true).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.Reviews == 0 {
		return nil, nil
	}
	avg := roundCents(row.AvgRating)
	return &avg, nil
}
