package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	actConfirmationHandler "github.com/citaflow/CITA-SchedulingService/internal/api/handlers/act_confirmation"
	assignWaitlistHandler "github.com/citaflow/CITA-SchedulingService/internal/api/handlers/assign_waitlist"
	createAppointmentHandler "github.com/citaflow/CITA-SchedulingService/internal/api/handlers/create_appointment"
	createWaitlistEntryHandler "github.com/citaflow/CITA-SchedulingService/internal/api/handlers/create_waitlist_entry"
	deleteWaitlistEntryHandler "github.com/citaflow/CITA-SchedulingService/internal/api/handlers/delete_waitlist_entry"
	getAppointmentHandler "github.com/citaflow/CITA-SchedulingService/internal/api/handlers/get_appointment"
	getEmployeeAppointmentsHandler "github.com/citaflow/CITA-SchedulingService/internal/api/handlers/get_employee_appointments"
	resolveConfirmationHandler "github.com/citaflow/CITA-SchedulingService/internal/api/handlers/resolve_confirmation"
	updateAppointmentStatusHandler "github.com/citaflow/CITA-SchedulingService/internal/api/handlers/update_appointment_status"
	"github.com/citaflow/CITA-SchedulingService/internal/api/middleware"
	"github.com/citaflow/CITA-SchedulingService/internal/config"
	appointmentRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/appointment"
	scheduleRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/schedule"
	serviceRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/service"
	tokenRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/token"
	waitlistRepo "github.com/citaflow/CITA-SchedulingService/internal/infra/storage/waitlist"
	notifierClient "github.com/citaflow/CITA-SchedulingService/internal/integrations/notifier"
	appointmentsService "github.com/citaflow/CITA-SchedulingService/internal/service/appointments"
	confirmationsService "github.com/citaflow/CITA-SchedulingService/internal/service/confirmations"
	waitlistSvc "github.com/citaflow/CITA-SchedulingService/internal/service/waitlist"
	assignWaitlistUC "github.com/citaflow/CITA-SchedulingService/internal/usecase/assign_waitlist"
	consumeConfirmationUC "github.com/citaflow/CITA-SchedulingService/internal/usecase/consume_confirmation"
	createAppointmentUC "github.com/citaflow/CITA-SchedulingService/internal/usecase/create_appointment"
	"github.com/citaflow/CITA-SchedulingService/pkg/dbmetrics"
	"github.com/citaflow/CITA-SchedulingService/pkg/logger"
	"github.com/citaflow/CITA-SchedulingService/pkg/metrics"
	"github.com/citaflow/CITA-SchedulingService/pkg/simpletxmanager"
	"github.com/citaflow/CITA-SchedulingService/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting CITA-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	notify := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Notifier client initialized (sink=%s timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Transaction manager interface shared by the use cases.
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		serviceRepository     *serviceRepo.Repository
		tokenRepository       *tokenRepo.Repository
		waitlistRepository    *waitlistRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		tokenRepository = tokenRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		tokenRepository = tokenRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	confirmationsSvc := confirmationsService.NewService(tokenRepository, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	waitlistService := waitlistSvc.NewService(waitlistRepository, appointmentRepository, log)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		serviceRepository,
		confirmationsSvc,
		txMgr,
		log,
	)
	consumeConfirmationUseCase := consumeConfirmationUC.NewUseCase(
		confirmationsSvc,
		confirmationsSvc,
		appointmentRepository,
		waitlistRepository,
		notify,
		txMgr,
		log,
	)
	assignWaitlistUseCase := assignWaitlistUC.NewUseCase(
		appointmentRepository,
		waitlistRepository,
		confirmationsSvc,
		txMgr,
		log,
	)

	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getEmployeeAppointments := getEmployeeAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	resolveConfirmation := resolveConfirmationHandler.NewHandler(consumeConfirmationUseCase, log)
	actConfirmation := actConfirmationHandler.NewHandler(consumeConfirmationUseCase, log)
	createWaitlistEntry := createWaitlistEntryHandler.NewHandler(waitlistService, log)
	deleteWaitlistEntry := deleteWaitlistEntryHandler.NewHandler(waitlistService, log)
	assignWaitlist := assignWaitlistHandler.NewHandler(assignWaitlistUseCase, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes: confirmation links are visited by clients without a login.
	api.HandleFunc("/confirmations/{token}", resolveConfirmation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/confirmations/{token}/actions", actConfirmation.Handle).Methods(http.MethodPost)

	// Protected routes require the gateway identity headers.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/employees/{employeeId}/appointments", getEmployeeAppointments.Handle).Methods(http.MethodGet)

	protected.HandleFunc("/waitlist", createWaitlistEntry.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/waitlist/{entryId}", deleteWaitlistEntry.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/waitlist/{entryId}/assign", assignWaitlist.Handle).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
