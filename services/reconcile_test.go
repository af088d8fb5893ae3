package services

import (
	"context"
	"testing"
	"time"

	"hotel-backoffice/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roomStatus(t *testing.T, svc *ReservationService, id uint) string {
	t.Helper()
	var room models.Room
	require.NoError(t, svc.DB.First(&room, id).Error)
	return room.Status
}

func TestReconcileCompletesEndedStays(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	pub := &recordingPublisher{}
	svc := newReservationService(db, pub)

	ended := insertReservation(t, db, f.Dupont, f.Room101, "2025-01-05", "2025-01-08", models.ReservationConfirmed, 80)
	cancelled := insertReservation(t, db, f.Martin, f.Room101, "2025-01-02", "2025-01-04", models.ReservationCancelled, 80)
	current := insertReservation(t, db, f.Martin, f.Room102, "2025-01-10", "2025-01-12", models.ReservationConfirmed, 150)

	result, err := svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uint{ended.ID}, result.Completed)
	assert.Equal(t, []uint{f.Room101.ID}, result.Cleaning)
	assert.Equal(t, []uint{f.Room102.ID}, result.Occupied)

	assert.Equal(t, models.RoomStatusCleaning, roomStatus(t, svc, f.Room101.ID))
	assert.Equal(t, models.RoomStatusOccupied, roomStatus(t, svc, f.Room102.ID))

	for id, want := range map[uint]string{
		ended.ID:     models.ReservationCompleted,
		cancelled.ID: models.ReservationCancelled,
		current.ID:   models.ReservationConfirmed,
	} {
		var got models.Reservation
		require.NoError(t, db.First(&got, id).Error)
		assert.Equal(t, want, got.Status, "reservation %d", id)
	}

	var audits []models.AuditLog
	require.NoError(t, db.Where("action = ?", "reservation.complete").Find(&audits).Error)
	require.Len(t, audits, 1)
	assert.Equal(t, ended.ID, audits[0].ResourceID)
	assert.Equal(t, SystemActor.UserID, audits[0].UserID)

	assert.Equal(t, []string{EventReservationCompleted}, pub.types())
}

func TestReconcileIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := newReservationService(db, nil)
	insertReservation(t, db, f.Dupont, f.Room101, "2025-01-05", "2025-01-08", models.ReservationConfirmed, 80)

	_, err := svc.Reconcile(context.Background())
	require.NoError(t, err)

	again, err := svc.Reconcile(context.Background())
	require.NoError(t, err)
	var audits int64
	db.Model(&models.AuditLog{}).Where("action = ?", "reservation.complete").Count(&audits)
	assert.EqualValues(t, 1, audits)
	assert.Empty(t, again.Completed)
	assert.Empty(t, again.Cleaning)
	assert.Empty(t, again.Occupied)
	assert.Equal(t, models.RoomStatusCleaning, roomStatus(t, svc, f.Room101.ID))
}

func TestReconcileLeavesCleaningRoomForCurrentStay(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := newReservationService(db, nil)
	insertReservation(t, db, f.Dupont, f.Room101, "2025-01-10", "2025-01-12", models.ReservationConfirmed, 80)
	require.NoError(t, db.Model(&models.Room{}).Where("id = ?", f.Room101.ID).
		Update("status", models.RoomStatusCleaning).Error)

	result, err := svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Occupied)
	assert.Equal(t, models.RoomStatusCleaning, roomStatus(t, svc, f.Room101.ID))
}

func TestReconcileWorkerHandler(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := newReservationService(db, nil)
	insertReservation(t, db, f.Dupont, f.Room101, "2025-01-05", "2025-01-08", models.ReservationConfirmed, 80)

	w := &ReconcileWorker{svc: svc, log: testLogger()}
	require.NoError(t, w.HandleReconcile(context.Background(), asynq.NewTask(TaskReconcileReservations, nil)))
	assert.Equal(t, models.RoomStatusCleaning, roomStatus(t, svc, f.Room101.ID))
}

func TestReconcileEveryRunsUntilCancelled(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	svc := newReservationService(db, nil)
	ended := insertReservation(t, db, f.Dupont, f.Room101, "2025-01-05", "2025-01-08", models.ReservationConfirmed, 80)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.ReconcileEvery(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		var got models.Reservation
		return db.First(&got, ended.ID).Error == nil && got.Status == models.ReservationCompleted
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reconcile loop did not stop")
	}
	assert.Equal(t, models.RoomStatusCleaning, roomStatus(t, svc, f.Room101.ID))
}
