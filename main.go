package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel-backoffice/config"
	"hotel-backoffice/controllers"
	"hotel-backoffice/routes"
	"hotel-backoffice/services"
	"hotel-backoffice/utils"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := config.NewLogger(cfg.LogLevel, cfg.LogFormat)

	if err := utils.RegisterValidators(); err != nil {
		log.WithError(err).Fatal("register validators")
	}

	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	log.WithField("driver", cfg.DBDriver).Info("database ready")

	var events services.EventPublisher = services.NoopPublisher{}
	if cfg.AMQPURL != "" {
		pub := services.NewAMQPPublisher(cfg.AMQPURL, log)
		defer func() { _ = pub.Close() }()
		events = pub
	}

	var locker services.RoomLocker
	rdb, err := config.NewRedis(cfg)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, room locks and scheduled reconcile disabled")
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		locker = services.NewRedisRoomLocker(rdb, 10*time.Second)
	}

	reservationSvc := services.NewReservationService(db, log, events, locker)
	reviewSvc := services.NewReviewService(db, log, events)
	authSvc := services.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	roleSvc := services.NewRoleService(db)

	// Catch up on stays that ended while the server was down.
	if _, err := reservationSvc.Reconcile(context.Background()); err != nil {
		log.WithError(err).Error("startup reconcile failed")
	}
	scheduled := false
	if rdb != nil {
		worker := services.NewReconcileWorker(config.AsynqRedisOpt(cfg), reservationSvc, log)
		if err := worker.Start(cfg.ReconcileSpec); err != nil {
			log.WithError(err).Error("reconcile worker not started")
		} else {
			scheduled = true
			defer worker.Shutdown()
		}
	}
	if !scheduled {
		loopCtx, stopLoop := context.WithCancel(context.Background())
		defer stopLoop()
		every := cfg.ReconcileInterval()
		log.WithField("every", every).Info("reconciling in process")
		go reservationSvc.ReconcileEvery(loopCtx, every)
	}

	router := routes.SetupRouter(routes.Handlers{
		Auth:         controllers.NewAuthController(authSvc, log),
		Rooms:        controllers.NewRoomController(services.NewRoomService(db, log), log),
		Clients:      controllers.NewClientController(services.NewClientService(db), log),
		Tariffs:      controllers.NewTariffController(services.NewTariffService(db), log),
		Services:     controllers.NewServiceController(services.NewServiceCatalog(db), log),
		Reservations: controllers.NewReservationController(reservationSvc, log),
		Consumptions: controllers.NewConsumptionController(services.NewConsumptionService(db, log), log),
		Invoices:     controllers.NewInvoiceController(services.NewInvoiceService(db, log, events), log),
		Reviews:      controllers.NewReviewController(reviewSvc, log),
		Dashboard:    controllers.NewDashboardController(services.NewDashboardService(db, reviewSvc), log),
		Roles:        controllers.NewRoleController(roleSvc, log),
		Admin:        controllers.NewAdminController(reservationSvc, services.NewAuditService(db), log),
		Tokens:       authSvc,
		Permissions:  roleSvc,
	}, cfg.CORSOrigins, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	log.Info("server stopped")
}
