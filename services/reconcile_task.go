package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

const TaskReconcileReservations = "reservations:reconcile"

// ReconcileWorker runs Reconcile on a schedule through asynq.
type ReconcileWorker struct {
	scheduler *asynq.Scheduler
	server    *asynq.Server
	svc       *ReservationService
	log       *logrus.Logger
}

func NewReconcileWorker(redisOpt asynq.RedisClientOpt, svc *ReservationService, log *logrus.Logger) *ReconcileWorker {
	return &ReconcileWorker{
		scheduler: asynq.NewScheduler(redisOpt, nil),
		server: asynq.NewServer(redisOpt, asynq.Config{
			Concurrency: 1,
			Queues:      map[string]int{"maintenance": 1},
		}),
		svc: svc,
		log: log,
	}
}

func (w *ReconcileWorker) HandleReconcile(ctx context.Context, _ *asynq.Task) error {
	if _, err := w.svc.Reconcile(ctx); err != nil {
		return fmt.Errorf("reconcile reservations: %w", err)
	}
	return nil
}

// Start registers the periodic task (cron spec or "@every 1h") and starts
// both the scheduler and the worker.
func (w *ReconcileWorker) Start(spec string) error {
	if _, err := w.scheduler.Register(spec, asynq.NewTask(TaskReconcileReservations, nil), asynq.Queue("maintenance")); err != nil {
		return fmt.Errorf("register reconcile task: %w", err)
	}
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskReconcileReservations, w.HandleReconcile)
	if err := w.server.Start(mux); err != nil {
		return err
	}
	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return err
	}
	w.log.WithField("spec", spec).Info("reconcile worker started")
	return nil
}

func (w *ReconcileWorker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

// ReconcileEvery runs Reconcile on a fixed period until ctx is done. It stands
// in for the asynq scheduler when no Redis is configured.
func (s *ReservationService) ReconcileEvery(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Reconcile(ctx); err != nil && ctx.Err() == nil {
				s.Log.WithError(err).Error("scheduled reconcile failed")
			}
		}
	}
}
