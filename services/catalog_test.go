package services

import (
	"context"
	"testing"

	"hotel-backoffice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, testLogger())

	room, err := svc.Create(RoomInput{RoomNumber: " 201 ", Type: models.RoomTypeDouble, BaseNightPrice: 110})
	require.NoError(t, err)
	assert.Equal(t, "201", room.RoomNumber)
	assert.Equal(t, models.RoomStatusFree, room.Status)

	_, err = svc.Create(RoomInput{RoomNumber: "201", Type: models.RoomTypeSuite, BaseNightPrice: 200})
	assert.ErrorIs(t, err, ErrConflict)
	_, err = svc.Create(RoomInput{RoomNumber: "202", Type: "Penthouse", BaseNightPrice: 200})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Create(RoomInput{RoomNumber: "203", Type: models.RoomTypeSimple, BaseNightPrice: -5})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Create(RoomInput{RoomNumber: "204", Type: models.RoomTypeSimple, Status: "Broken"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, db.Model(&models.Room{}).Where("id = ?", room.ID).Update("status", models.RoomStatusOccupied).Error)
	updated, err := svc.Update(room.ID, RoomInput{RoomNumber: "201", Type: models.RoomTypeFamiliale, BaseNightPrice: 130, Status: models.RoomStatusFree})
	require.NoError(t, err)
	assert.Equal(t, models.RoomTypeFamiliale, updated.Type)
	assert.Equal(t, models.RoomStatusOccupied, updated.Status, "status is not editable")

	_, err = svc.Update(999, RoomInput{RoomNumber: "9", Type: models.RoomTypeSimple})
	assert.ErrorIs(t, err, ErrNotFound)

	rooms, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}

func TestRoomDelete(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewRoomService(db, testLogger())
	insertReservation(t, db, f.Dupont, f.Room101, "2025-01-12", "2025-01-14", models.ReservationCancelled, 80)
	require.NoError(t, db.Create(&models.Consumption{
		RoomID: f.Room102.ID, Type: models.ConsumptionWater, ReadingDate: "2025-01-02", Value: 1, Unit: "m3", UnitCost: 3,
	}).Error)

	assert.ErrorIs(t, svc.Delete(f.Room101.ID), ErrConflict)

	require.NoError(t, svc.Delete(f.Room102.ID))
	var readings int64
	db.Model(&models.Consumption{}).Count(&readings)
	assert.Zero(t, readings)

	assert.ErrorIs(t, svc.Delete(f.Room102.ID), ErrNotFound)
}

func TestAvailableRooms(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewRoomService(db, testLogger())
	insertReservation(t, db, f.Dupont, f.Room101, "2025-01-12", "2025-01-15", models.ReservationConfirmed, 80)
	insertReservation(t, db, f.Martin, f.Room102, "2025-01-12", "2025-01-15", models.ReservationCancelled, 150)

	rooms, err := svc.Available("2025-01-14", "2025-01-16")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "102", rooms[0].RoomNumber)

	rooms, err = svc.Available("2025-01-15", "2025-01-16")
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	_, err = svc.Available("2025-01-16", "2025-01-15")
	assert.ErrorIs(t, err, ErrInvalidDates)
	_, err = svc.Available("tomorrow", "2025-01-15")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkRoomCleaned(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewRoomService(db, testLogger())
	ctx := context.Background()

	_, err := svc.MarkCleaned(ctx, staffActor, f.Room101.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, db.Model(&models.Room{}).Where("id = ?", f.Room101.ID).Update("status", models.RoomStatusCleaning).Error)
	room, err := svc.MarkCleaned(ctx, staffActor, f.Room101.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusFree, room.Status)

	_, err = svc.MarkCleaned(ctx, staffActor, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewClientService(db)

	c, err := svc.Create(ClientInput{LastName: "Durand", FirstName: "Paul", Email: "paul@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.LoyaltyStandard, c.LoyaltyTier)

	_, err = svc.Create(ClientInput{LastName: "Durand", FirstName: "Marie", Email: "paul@example.com"})
	assert.ErrorIs(t, err, ErrConflict)
	_, err = svc.Create(ClientInput{LastName: "Durand", FirstName: "Marie", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Create(ClientInput{LastName: "Durand", FirstName: "Marie", Email: "marie@example.com", LoyaltyTier: "Platinum"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Create(ClientInput{LastName: " ", FirstName: "Marie", Email: "marie@example.com"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	updated, err := svc.Update(c.ID, ClientInput{LastName: "Durand", FirstName: "Paul", Email: "paul@example.com", LoyaltyTier: models.LoyaltyGold})
	require.NoError(t, err)
	assert.Equal(t, models.LoyaltyGold, updated.LoyaltyTier)

	_, err = svc.Get(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewClientService(db)
	stay := insertReservation(t, db, f.Dupont, f.Room101, "2025-01-01", "2025-01-03", models.ReservationCompleted, 80)
	require.NoError(t, db.Create(&models.ReservationService{ReservationID: stay.ID, ServiceID: f.Breakfast.ID, Quantity: 1}).Error)
	require.NoError(t, db.Create(&models.Review{ClientID: f.Dupont.ID, ReservationID: stay.ID, Rating: 5, Comment: "ok", SubmissionDate: "2025-01-04"}).Error)
	reading := models.Consumption{RoomID: f.Room101.ID, ReservationID: &stay.ID, Type: models.ConsumptionWater, ReadingDate: "2025-01-02", Value: 1, Unit: "m3", UnitCost: 3}
	require.NoError(t, db.Create(&reading).Error)
	clientID := f.Dupont.ID
	require.NoError(t, db.Create(&models.User{Username: "jean", Password: "x", Role: models.RoleClient, ClientID: &clientID}).Error)

	require.NoError(t, svc.Delete(f.Dupont.ID))

	var n int64
	db.Model(&models.Reservation{}).Where("client_id = ?", f.Dupont.ID).Count(&n)
	assert.Zero(t, n)
	db.Model(&models.Review{}).Count(&n)
	assert.Zero(t, n)
	db.Model(&models.ReservationService{}).Count(&n)
	assert.Zero(t, n)

	var kept models.Consumption
	require.NoError(t, db.First(&kept, reading.ID).Error)
	assert.Nil(t, kept.ReservationID)

	var user models.User
	require.NoError(t, db.Where("username = ?", "jean").First(&user).Error)
	assert.Nil(t, user.ClientID)
}

func TestClientDeleteBlockedByInvoice(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewClientService(db)
	stay := insertReservation(t, db, f.Martin, f.Room101, "2025-01-01", "2025-01-03", models.ReservationCompleted, 68)
	require.NoError(t, db.Create(&models.Invoice{ReservationID: stay.ID, Total: 136, EmissionDate: "2025-01-03", Status: models.InvoicePaid}).Error)

	assert.ErrorIs(t, svc.Delete(f.Martin.ID), ErrConflict)
	_, err := svc.Get(f.Martin.ID)
	assert.NoError(t, err)
}

func TestTariffCRUDAndApplicable(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewTariffService(db)

	weekend, err := svc.Create(TariffInput{Name: "Weekend Promo", ReductionPercentage: 10, Condition: "Weekend Booking"})
	require.NoError(t, err)
	open, err := svc.Create(TariffInput{Name: "Early Bird", ReductionPercentage: 5})
	require.NoError(t, err)
	assert.Equal(t, models.ConditionNone, open.Condition)

	_, err = svc.Create(TariffInput{Name: "Weekend Promo"})
	assert.ErrorIs(t, err, ErrConflict)
	_, err = svc.Create(TariffInput{Name: "Free", ReductionPercentage: 120})
	assert.ErrorIs(t, err, ErrInvalidInput)

	names := func(list []models.Tariff) []string {
		out := []string{}
		for _, t := range list {
			out = append(out, t.Name)
		}
		return out
	}

	standard, err := svc.Applicable(f.Dupont.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Early Bird", "Standard"}, names(standard))

	vip, err := svc.Applicable(f.Martin.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Early Bird", "Standard", "VIP Discount"}, names(vip))

	_, err = svc.Applicable(999)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.Update(weekend.ID, TariffInput{Name: "Weekend Promo", ReductionPercentage: 20, Condition: "Weekend Booking"})
	require.NoError(t, err)
	assert.Equal(t, 20.0, updated.ReductionPercentage)

	insertReservation(t, db, f.Dupont, f.Room101, "2025-01-12", "2025-01-14", models.ReservationConfirmed, 80)
	assert.ErrorIs(t, svc.Delete(f.Standard.ID), ErrConflict)
	require.NoError(t, svc.Delete(weekend.ID))
	assert.ErrorIs(t, svc.Delete(weekend.ID), ErrNotFound)
}

func TestServiceCatalog(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewServiceCatalog(db)

	spa, err := svc.Create(ServiceInput{Name: "Spa Access", Price: 50})
	require.NoError(t, err)
	assert.Equal(t, models.ServiceAvailable, spa.Availability)

	_, err = svc.Create(ServiceInput{Name: "Spa Access", Price: 60})
	assert.ErrorIs(t, err, ErrConflict)
	_, err = svc.Create(ServiceInput{Name: "Valet", Price: 10, Availability: "Sometimes"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	off, err := svc.Update(spa.ID, ServiceInput{Name: "Spa Access", Price: 55, Availability: models.ServiceUnavailable})
	require.NoError(t, err)
	assert.Equal(t, models.ServiceUnavailable, off.Availability)

	stay := insertReservation(t, db, f.Dupont, f.Room101, "2025-01-12", "2025-01-14", models.ReservationConfirmed, 80)
	require.NoError(t, db.Create(&models.ReservationService{ReservationID: stay.ID, ServiceID: f.Breakfast.ID, Quantity: 2}).Error)
	require.NoError(t, svc.Delete(f.Breakfast.ID))

	var links int64
	db.Model(&models.ReservationService{}).Count(&links)
	assert.Zero(t, links)

	list, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
