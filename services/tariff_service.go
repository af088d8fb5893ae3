package services

import (
	"fmt"
	"strings"

	"hotel-backoffice/models"

	"gorm.io/gorm"
)

type TariffService struct {
	DB *gorm.DB
}

func NewTariffService(db *gorm.DB) *TariffService {
	return &TariffService{DB: db}
}

type TariffInput struct {
	Name                string  `json:"name" binding:"required"`
	Description         string  `json:"description"`
	ReductionPercentage float64 `json:"reduction_percentage"`
	Condition           string  `json:"condition"`
}

func (in *TariffInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Condition = strings.TrimSpace(in.Condition)
	if in.Name == "" {
		return fmt.Errorf("%w: tariff name is required", ErrInvalidInput)
	}
	if in.ReductionPercentage < 0 || in.ReductionPercentage > 100 {
		return fmt.Errorf("%w: reduction must be between 0 and 100", ErrInvalidInput)
	}
	if in.Condition == "" {
		in.Condition = models.ConditionNone
	}
	return nil
}

func (s *TariffService) List() ([]models.Tariff, error) {
	var tariffs []models.Tariff
	err := s.DB.Order("name").Find(&tariffs).Error
	return tariffs, err
}

func (s *TariffService) Get(id uint) (*models.Tariff, error) {
	var t models.Tariff
	if err := s.DB.First(&t, id).Error; err != nil {
		return nil, notFoundOr(err, "tariff", id)
	}
	return &t, nil
}

// Applicable returns the tariffs a client may book with: unconditional ones
// and the Standard tariff for everybody, VIP tariffs for VIP clients.
func (s *TariffService) Applicable(clientID uint) ([]models.Tariff, error) {
	var client models.Client
	if err := s.DB.First(&client, clientID).Error; err != nil {
		return nil, notFoundOr(err, "client", clientID)
	}
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	out := []models.Tariff{}
	for _, t := range all {
		general := t.Condition == models.ConditionNone || t.Name == "Standard"
		vip := client.LoyaltyTier == models.LoyaltyVIP && strings.Contains(t.Condition, "VIP")
		if general || vip {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *TariffService) Create(in TariffInput) (*models.Tariff, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	t := models.Tariff{
		Name:                in.Name,
		Description:         strings.TrimSpace(in.Description),
		ReductionPercentage: in.ReductionPercentage,
		Condition:           in.Condition,
	}
	if err := s.DB.Create(&t).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: tariff %q already exists", ErrConflict, t.Name)
		}
		return nil, err
	}
	return &t, nil
}

func (s *TariffService) Update(id uint, in TariffInput) (*models.Tariff, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	t.Name = in.Name
	t.Description = strings.TrimSpace(in.Description)
	t.ReductionPercentage = in.ReductionPercentage
	t.Condition = in.Condition
	if err := s.DB.Save(t).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: tariff %q already exists", ErrConflict, t.Name)
		}
		return nil, err
	}
	return t, nil
}

func (s *TariffService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var t models.Tariff
		if err := tx.First(&t, id).Error; err != nil {
			return notFoundOr(err, "tariff", id)
		}
		var refs int64
		if err := tx.Model(&models.Reservation{}).Where("tariff_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("%w: tariff %q is used by reservations", ErrConflict, t.Name)
		}
		return tx.Delete(&models.Tariff{}, id).Error
	})
}
