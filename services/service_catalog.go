package services

import (
	"fmt"
	"strings"

	"hotel-backoffice/models"

	"gorm.io/gorm"
)

// ServiceCatalog manages the extras that can be attached to reservations.
type ServiceCatalog struct {
	DB *gorm.DB
}

func NewServiceCatalog(db *gorm.DB) *ServiceCatalog {
	return &ServiceCatalog{DB: db}
}

type ServiceInput struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"gte=0"`
	Availability string  `json:"availability"`
}

func (in *ServiceInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}
	if in.Availability == "" {
		in.Availability = models.ServiceAvailable
	}
	if in.Availability != models.ServiceAvailable && in.Availability != models.ServiceUnavailable {
		return fmt.Errorf("%w: unknown availability %q", ErrInvalidInput, in.Availability)
	}
	return nil
}

func (s *ServiceCatalog) List() ([]models.Service, error) {
	var list []models.Service
	err := s.DB.Order("name").Find(&list).Error
	return list, err
}

func (s *ServiceCatalog) Get(id uint) (*models.Service, error) {
	var svc models.Service
	if err := s.DB.First(&svc, id).Error; err != nil {
		return nil, notFoundOr(err, "service", id)
	}
	return &svc, nil
}

func (s *ServiceCatalog) Create(in ServiceInput) (*models.Service, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	svc := models.Service{
		Name:         in.Name,
		Description:  strings.TrimSpace(in.Description),
		Price:        in.Price,
		Availability: in.Availability,
	}
	if err := s.DB.Create(&svc).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: service %q already exists", ErrConflict, svc.Name)
		}
		return nil, err
	}
	return &svc, nil
}

func (s *ServiceCatalog) Update(id uint, in ServiceInput) (*models.Service, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	svc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	svc.Name = in.Name
	svc.Description = strings.TrimSpace(in.Description)
	svc.Price = in.Price
	svc.Availability = in.Availability
	if err := s.DB.Save(svc).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: service %q already exists", ErrConflict, svc.Name)
		}
		return nil, err
	}
	return svc, nil
}

// Delete removes a service and detaches it from reservations.
func (s *ServiceCatalog) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var svc models.Service
		if err := tx.First(&svc, id).Error; err != nil {
			return notFoundOr(err, "service", id)
		}
		if err := tx.Where("service_id = ?", id).Delete(&models.ReservationService{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Service{}, id).Error
	})
}
