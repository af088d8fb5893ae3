package services

import (
	"fmt"
	"net/mail"
	"strings"

	"hotel-backoffice/models"

	"gorm.io/gorm"
)

type ClientService struct {
	DB *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{DB: db}
}

type ClientInput struct {
	LastName    string `json:"last_name" binding:"required"`
	FirstName   string `json:"first_name" binding:"required"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"required"`
	Address     string `json:"address"`
	LoyaltyTier string `json:"loyalty_tier"`
}

func (in *ClientInput) validate() error {
	in.LastName = strings.TrimSpace(in.LastName)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.Email = strings.TrimSpace(in.Email)
	if in.LastName == "" || in.FirstName == "" {
		return fmt.Errorf("%w: last and first name are required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidInput, in.Email)
	}
	if in.LoyaltyTier == "" {
		in.LoyaltyTier = models.LoyaltyStandard
	}
	if !models.IsLoyaltyTier(in.LoyaltyTier) {
		return fmt.Errorf("%w: unknown loyalty tier %q", ErrInvalidInput, in.LoyaltyTier)
	}
	return nil
}

func (s *ClientService) List() ([]models.Client, error) {
	var clients []models.Client
	err := s.DB.Order("last_name, first_name").Find(&clients).Error
	return clients, err
}

func (s *ClientService) Get(id uint) (*models.Client, error) {
	var c models.Client
	if err := s.DB.First(&c, id).Error; err != nil {
		return nil, notFoundOr(err, "client", id)
	}
	return &c, nil
}

func (s *ClientService) Create(in ClientInput) (*models.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	c := models.Client{
		LastName:    in.LastName,
		FirstName:   in.FirstName,
		Phone:       strings.TrimSpace(in.Phone),
		Email:       in.Email,
		Address:     strings.TrimSpace(in.Address),
		LoyaltyTier: in.LoyaltyTier,
	}
	if err := s.DB.Create(&c).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: email %q already registered", ErrConflict, c.Email)
		}
		return nil, err
	}
	return &c, nil
}

func (s *ClientService) Update(id uint, in ClientInput) (*models.Client, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	c, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	c.LastName = in.LastName
	c.FirstName = in.FirstName
	c.Phone = strings.TrimSpace(in.Phone)
	c.Email = in.Email
	c.Address = strings.TrimSpace(in.Address)
	c.LoyaltyTier = in.LoyaltyTier
	if err := s.DB.Save(c).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: email %q already registered", ErrConflict, c.Email)
		}
		return nil, err
	}
	return c, nil
}

// Delete removes a client together with their reservations and reviews.
// Clients with invoiced reservations are kept.
func (s *ClientService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var c models.Client
		if err := tx.First(&c, id).Error; err != nil {
			return notFoundOr(err, "client", id)
		}
		stays := func() *gorm.DB {
			return tx.Model(&models.Reservation{}).Select("id").Where("client_id = ?", id)
		}

		var invoiced int64
		if err := tx.Model(&models.Invoice{}).Where("reservation_id IN (?)", stays()).Count(&invoiced).Error; err != nil {
			return err
		}
		if invoiced > 0 {
			return fmt.Errorf("%w: client %d has invoiced reservations", ErrConflict, id)
		}

		if err := tx.Where("client_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("reservation_id IN (?)", stays()).Delete(&models.ReservationService{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Consumption{}).Where("reservation_id IN (?)", stays()).
			Update("reservation_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.Reservation{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("client_id = ?", id).Update("client_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Client{}, id).Error
	})
}
