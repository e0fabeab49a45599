package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/mindwell/clinic-scheduler/internal/config"
	"github.com/mindwell/clinic-scheduler/internal/email"
	"github.com/mindwell/clinic-scheduler/internal/repository/postgres"
	auditService "github.com/mindwell/clinic-scheduler/internal/service/audit"
	bookingService "github.com/mindwell/clinic-scheduler/internal/service/booking"
	scheduleService "github.com/mindwell/clinic-scheduler/internal/service/schedule"
	internalworker "github.com/mindwell/clinic-scheduler/internal/worker"
	"github.com/mindwell/clinic-scheduler/pkg/logger"
	redisbroker "github.com/mindwell/clinic-scheduler/pkg/messaging/redis"
	"github.com/mindwell/clinic-scheduler/pkg/metrics"
	"github.com/mindwell/clinic-scheduler/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	lg := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		lg.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	broker, err := redisbroker.NewRedisBroker(redisbroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &lg.ZL)
	if err != nil {
		lg.Fatal(err, "failed to connect to Redis")
	}
	defer broker.Close()

	m := metrics.New("clinic_scheduler")

	psychologistRepo := postgres.NewPsychologistRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	availabilityRepo := postgres.NewAvailabilityRepository(db)
	timeSlotRepo := postgres.NewTimeSlotRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	auditSvc := auditService.NewService(auditRepo)
	scheduleSvc := scheduleService.NewService(availabilityRepo, timeSlotRepo, appointmentRepo, psychologistRepo, auditSvc, cfg.Booking)
	bookingSvc := bookingService.NewService(bookingRepo, appointmentRepo, timeSlotRepo, psychologistRepo, patientRepo, serviceRepo, auditSvc, cfg.Booking)

	outboxProcessor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     cfg.Outbox.BatchSize,
		PollInterval:  cfg.Outbox.PollInterval,
		RetryAttempts: cfg.Outbox.RetryAttempts,
		RetryDelay:    cfg.Outbox.RetryDelay,
	}, lg, m)

	slotMaintenance := internalworker.NewSlotMaintenanceWorker(scheduleSvc, psychologistRepo, m, cfg.Worker.SlotRegenInterval)
	noShowSweeper := internalworker.NewNoShowSweeper(bookingSvc, m, cfg.Worker.NoShowInterval, cfg.Worker.NoShowBatchSize)
	retention := internalworker.NewRetentionWorker(auditRepo, outboxRepo, cfg.Worker.AuditRetentionDays, cfg.Worker.CleanupInterval)
	notifier := internalworker.NewNotifier(broker, email.NewSMTPService(cfg.SMTP), patientRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startHealthServer(cfg.Worker.HealthPort)

	var wg sync.WaitGroup
	run := func(name string, fn func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Info().Str("worker", name).Msg("worker started")
			fn(ctx)
			log.Info().Str("worker", name).Msg("worker stopped")
		}()
	}

	run("outbox", outboxProcessor.Start)
	run("slot_maintenance", slotMaintenance.Start)
	run("no_show_sweeper", noShowSweeper.Start)
	run("retention", retention.Start)
	run("notifier", func(ctx context.Context) {
		if err := notifier.Start(ctx); err != nil {
			log.Error().Err(err).Msg("notifier exited")
		}
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down workers")
	cancel()
	wg.Wait()
}

func startHealthServer(port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
			log.Error().Err(err).Msg("health server failed")
			os.Exit(1)
		}
	}()
}
