package config

import (
	"errors"

	"hotel-backoffice/models"
	"hotel-backoffice/services"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Seed is idempotent: existing rows are left as they are.
func Seed(db *gorm.DB, log *logrus.Logger, demo bool) error {
	if err := seedRoles(db, log); err != nil {
		return err
	}
	var clientID *uint
	if demo {
		id, err := seedCatalog(db, log)
		if err != nil {
			return err
		}
		clientID = id
	}
	return seedUsers(db, log, clientID)
}

func seedRoles(db *gorm.DB, log *logrus.Logger) error {
	for _, def := range services.RoleDefinitions {
		var role models.Role
		err := db.Where("name = ?", def.Name).First(&role).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		role = models.Role{Name: def.Name, Description: def.Description, Rank: def.Rank}
		for _, p := range services.DefaultPermissions(def.Name) {
			role.Permissions = append(role.Permissions, models.RolePermission{Permission: p})
		}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"role": role.Name, "permissions": len(role.Permissions)}).Info("role seeded")
	}
	return nil
}

type seedUser struct {
	username, password, role string
}

func seedUsers(db *gorm.DB, log *logrus.Logger, clientID *uint) error {
	users := []seedUser{
		{"admin", "admin123", models.RoleAdmin},
		{"staff", "staff123", models.RoleStaff},
	}
	if clientID != nil {
		users = append(users, seedUser{"client", "client123", models.RoleClient})
	}
	for _, u := range users {
		var count int64
		if err := db.Model(&models.User{}).Where("username = ?", u.username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		hash, err := services.HashPassword(u.password)
		if err != nil {
			return err
		}
		user := models.User{Username: u.username, Password: hash, Role: u.role}
		if u.role == models.RoleClient {
			user.ClientID = clientID
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		log.WithField("username", u.username).Warn("default account created, change its password")
	}
	return nil
}

// seedCatalog loads demo rooms, tariffs, services and clients into an empty
// database and returns the client the demo account is linked to.
func seedCatalog(db *gorm.DB, log *logrus.Logger) (*uint, error) {
	var rooms int64
	if err := db.Model(&models.Room{}).Count(&rooms).Error; err != nil {
		return nil, err
	}
	if rooms == 0 {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&[]models.Room{
				{RoomNumber: "101", Type: models.RoomTypeSimple, BaseNightPrice: 80, Status: models.RoomStatusFree},
				{RoomNumber: "102", Type: models.RoomTypeSuite, BaseNightPrice: 150, Status: models.RoomStatusFree},
				{RoomNumber: "103", Type: models.RoomTypeDouble, BaseNightPrice: 100, Status: models.RoomStatusFree},
			}).Error; err != nil {
				return err
			}
			if err := tx.Create(&[]models.Tariff{
				{Name: "Standard", Description: "Tarif de base", ReductionPercentage: 0, Condition: models.ConditionNone},
				{Name: "VIP Discount", Description: "Réduction fidélité", ReductionPercentage: 15, Condition: "VIP Status"},
				{Name: "Weekend Promo", Description: "Séjour de week-end", ReductionPercentage: 10, Condition: "Weekend Booking"},
			}).Error; err != nil {
				return err
			}
			if err := tx.Create(&[]models.Service{
				{Name: "Petit-déjeuner", Description: "Buffet continental", Price: 15, Availability: models.ServiceAvailable},
				{Name: "Spa Access", Description: "Accès journée au spa", Price: 50, Availability: models.ServiceAvailable},
				{Name: "Navette Aéroport", Description: "Transfert aller simple", Price: 30, Availability: models.ServiceAvailable},
			}).Error; err != nil {
				return err
			}
			return tx.Create(&[]models.Client{
				{LastName: "Dupont", FirstName: "Jean", Phone: "0600000001", Email: "jean.dupont@example.com", Address: "1 rue de Paris", LoyaltyTier: models.LoyaltyStandard},
				{LastName: "Martin", FirstName: "Sophie", Phone: "0600000002", Email: "sophie.martin@example.com", Address: "2 avenue de Lyon", LoyaltyTier: models.LoyaltyVIP},
			}).Error
		})
		if err != nil {
			return nil, err
		}
		log.Info("demo catalog seeded")
	}

	var client models.Client
	if err := db.Where("email = ?", "jean.dupont@example.com").First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client.ID, nil
}
