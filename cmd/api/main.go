package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mindwell/clinic-scheduler/internal/config"
	appointmentHandler "github.com/mindwell/clinic-scheduler/internal/handler/appointment"
	auditHandler "github.com/mindwell/clinic-scheduler/internal/handler/audit"
	availabilityHandler "github.com/mindwell/clinic-scheduler/internal/handler/availability"
	catalogHandler "github.com/mindwell/clinic-scheduler/internal/handler/catalog"
	healthHandler "github.com/mindwell/clinic-scheduler/internal/handler/health"
	patientHandler "github.com/mindwell/clinic-scheduler/internal/handler/patient"
	psychologistHandler "github.com/mindwell/clinic-scheduler/internal/handler/psychologist"
	"github.com/mindwell/clinic-scheduler/internal/middleware"
	"github.com/mindwell/clinic-scheduler/internal/repository/postgres"
	"github.com/mindwell/clinic-scheduler/internal/router"
	auditService "github.com/mindwell/clinic-scheduler/internal/service/audit"
	bookingService "github.com/mindwell/clinic-scheduler/internal/service/booking"
	catalogService "github.com/mindwell/clinic-scheduler/internal/service/catalog"
	patientService "github.com/mindwell/clinic-scheduler/internal/service/patient"
	psychologistService "github.com/mindwell/clinic-scheduler/internal/service/psychologist"
	scheduleService "github.com/mindwell/clinic-scheduler/internal/service/schedule"
	"github.com/mindwell/clinic-scheduler/pkg/auth"
	"github.com/mindwell/clinic-scheduler/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	psychologistRepo := postgres.NewPsychologistRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	availabilityRepo := postgres.NewAvailabilityRepository(db)
	timeSlotRepo := postgres.NewTimeSlotRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	auditSvc := auditService.NewService(auditRepo)
	psychologistSvc := psychologistService.NewService(psychologistRepo, auditSvc)
	patientSvc := patientService.NewService(patientRepo, auditSvc)
	catalogSvc := catalogService.NewService(serviceRepo, auditSvc)
	scheduleSvc := scheduleService.NewService(availabilityRepo, timeSlotRepo, appointmentRepo, psychologistRepo, auditSvc, cfg.Booking)
	bookingSvc := bookingService.NewService(bookingRepo, appointmentRepo, timeSlotRepo, psychologistRepo, patientRepo, serviceRepo, auditSvc, cfg.Booking)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)
	v := validator.New()

	r := router.NewRouter(
		cfg,
		authMiddleware,
		healthHandler.NewHandler(db, nil),
		psychologistHandler.NewHandler(psychologistSvc, v),
		patientHandler.NewHandler(patientSvc, v),
		catalogHandler.NewHandler(catalogSvc, v),
		availabilityHandler.NewHandler(scheduleSvc, v),
		appointmentHandler.NewHandler(bookingSvc, v),
		auditHandler.NewHandler(auditSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
