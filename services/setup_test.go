package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"hotel-backoffice/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 2025-01-10, mid-morning.
var testNow = time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.RolePermission{},
		&models.Client{},
		&models.User{},
		&models.Room{},
		&models.Tariff{},
		&models.Service{},
		&models.Reservation{},
		&models.ReservationService{},
		&models.Consumption{},
		&models.Invoice{},
		&models.Review{},
		&models.AuditLog{},
	))
	return db
}

func testLogger() *logrus.Logger {
	log, _ := logtest.NewNullLogger()
	return log
}

type fixtures struct {
	Room101, Room102   models.Room
	Standard, VIP      models.Tariff
	Dupont, Martin     models.Client
	Breakfast, Shuttle models.Service
	Massage            models.Service
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()
	f := fixtures{
		Room101:   models.Room{RoomNumber: "101", Type: models.RoomTypeSimple, BaseNightPrice: 80, Status: models.RoomStatusFree},
		Room102:   models.Room{RoomNumber: "102", Type: models.RoomTypeSuite, BaseNightPrice: 150, Status: models.RoomStatusFree},
		Standard:  models.Tariff{Name: "Standard", ReductionPercentage: 0, Condition: models.ConditionNone},
		VIP:       models.Tariff{Name: "VIP Discount", ReductionPercentage: 15, Condition: "VIP Status"},
		Dupont:    models.Client{LastName: "Dupont", FirstName: "Jean", Email: "jean@example.com", LoyaltyTier: models.LoyaltyStandard},
		Martin:    models.Client{LastName: "Martin", FirstName: "Sophie", Email: "sophie@example.com", LoyaltyTier: models.LoyaltyVIP},
		Breakfast: models.Service{Name: "Petit-déjeuner", Price: 15, Availability: models.ServiceAvailable},
		Shuttle:   models.Service{Name: "Navette Aéroport", Price: 30, Availability: models.ServiceAvailable},
		Massage:   models.Service{Name: "Massage", Price: 70, Availability: models.ServiceUnavailable},
	}
	for _, v := range []interface{}{
		&f.Room101, &f.Room102, &f.Standard, &f.VIP, &f.Dupont, &f.Martin,
		&f.Breakfast, &f.Shuttle, &f.Massage,
	} {
		require.NoError(t, db.Create(v).Error)
	}
	return f
}

// insertReservation stores a reservation directly, bypassing date checks.
func insertReservation(t *testing.T, db *gorm.DB, client models.Client, room models.Room, start, end, status string, rate float64) models.Reservation {
	t.Helper()
	r := models.Reservation{
		ReferenceCode:    uuid.NewString(),
		ClientID:         client.ID,
		RoomID:           room.ID,
		TariffID:         1,
		StartDate:        start,
		EndDate:          end,
		AppliedNightRate: rate,
		Status:           status,
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

var (
	staffActor = Actor{UserID: 2, Username: "staff", Role: models.RoleStaff}
	adminActor = Actor{UserID: 1, Username: "admin", Role: models.RoleAdmin}
)

func clientActor(c models.Client) Actor {
	id := c.ID
	return Actor{UserID: 100 + c.ID, Username: "guest", Role: models.RoleClient, ClientID: &id}
}

func newReservationService(db *gorm.DB, pub EventPublisher) *ReservationService {
	s := NewReservationService(db, testLogger(), pub, nil)
	s.Now = fixedClock
	return s
}
