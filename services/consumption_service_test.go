package services

import (
	"testing"

	"hotel-backoffice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordConsumptionLinksCoveringStay(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewConsumptionService(db, testLogger())
	stay := insertReservation(t, db, f.Dupont, f.Room101, "2025-01-08", "2025-01-11", models.ReservationConfirmed, 80)

	c, err := svc.Record(staffActor, RecordConsumptionInput{
		RoomID: f.Room101.ID, Type: models.ConsumptionWater, ReadingDate: "2025-01-09",
		Value: "12.5", Unit: "m3", UnitCost: "3.2",
	})
	require.NoError(t, err)
	require.NotNil(t, c.ReservationID)
	assert.Equal(t, stay.ID, *c.ReservationID)
	assert.Equal(t, 12.5, c.Value)
	assert.Equal(t, "101", c.Room.RoomNumber)

	// end date is exclusive
	c, err = svc.Record(staffActor, RecordConsumptionInput{
		RoomID: f.Room101.ID, Type: models.ConsumptionEnergy, ReadingDate: "2025-01-11",
		Value: "40", Unit: "kWh", UnitCost: "0.2",
	})
	require.NoError(t, err)
	assert.Nil(t, c.ReservationID)
}

func TestRecordConsumptionIgnoresCancelledStay(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewConsumptionService(db, testLogger())
	insertReservation(t, db, f.Dupont, f.Room101, "2025-01-08", "2025-01-11", models.ReservationCancelled, 80)

	c, err := svc.Record(staffActor, RecordConsumptionInput{
		RoomID: f.Room101.ID, Type: models.ConsumptionGas, ReadingDate: "2025-01-09",
		Value: "1", Unit: "m3", UnitCost: "1",
	})
	require.NoError(t, err)
	assert.Nil(t, c.ReservationID)
}

func TestRecordConsumptionValidation(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewConsumptionService(db, testLogger())
	valid := RecordConsumptionInput{
		RoomID: f.Room101.ID, Type: models.ConsumptionMinibar, ReadingDate: "2025-01-09",
		Value: "2", Unit: "item", UnitCost: "4.5",
	}

	for _, mutate := range []func(*RecordConsumptionInput){
		func(in *RecordConsumptionInput) { in.Value = "abc" },
		func(in *RecordConsumptionInput) { in.Value = "-1" },
		func(in *RecordConsumptionInput) { in.UnitCost = "" },
		func(in *RecordConsumptionInput) { in.UnitCost = "NaN" },
	} {
		in := valid
		mutate(&in)
		_, err := svc.Record(staffActor, in)
		assert.ErrorIs(t, err, ErrInvalidValue)
	}

	in := valid
	in.Type = "Steam"
	_, err := svc.Record(staffActor, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = valid
	in.RoomID = 999
	_, err = svc.Record(staffActor, in)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	db.Model(&models.Consumption{}).Count(&count)
	assert.Zero(t, count)
}

func TestListConsumptionsByRoom(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := NewConsumptionService(db, testLogger())
	for _, in := range []RecordConsumptionInput{
		{RoomID: f.Room101.ID, Type: models.ConsumptionWater, ReadingDate: "2025-01-05", Value: "1", Unit: "m3", UnitCost: "3"},
		{RoomID: f.Room101.ID, Type: models.ConsumptionWater, ReadingDate: "2025-01-07", Value: "2", Unit: "m3", UnitCost: "3"},
		{RoomID: f.Room102.ID, Type: models.ConsumptionWater, ReadingDate: "2025-01-06", Value: "3", Unit: "m3", UnitCost: "3"},
	} {
		_, err := svc.Record(staffActor, in)
		require.NoError(t, err)
	}

	all, err := svc.List(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	list, err := svc.List(&f.Room101.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2025-01-07", list[0].ReadingDate)
}
