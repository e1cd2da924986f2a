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
	"github.com/redis/go-redis/v9"

	changeStatusHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/change_appointment_status"
	createAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getBusinessHoursHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_business_hours"
	healthHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/health"
	listAppointmentsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_appointments"
	publicBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/public_booking"
	updateAppointmentHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_appointment"
	updateBusinessHoursHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_business_hours"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/coordination"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	bookingLinkRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/bookinglink"
	businessHoursRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/businesshours"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	financialRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/financial"
	serviceRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/service"
	appointmentsService "github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	businessHoursService "github.com/m04kA/SMC-SchedulingService/internal/service/businesshours"
	createAppointmentUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	publicBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/public_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/ownerlock"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SchedulingService...")

	loc, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Scheduling.Timezone, err)
	}
	log.Info("Scheduling timezone: %s", loc)

	// Метрики (nil-коллектор безопасен: все методы ничего не делают)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxRetries(cfg.Scheduling.SerializeRetries))

	healthDeps := map[string]healthHandler.Pinger{"postgres": wrappedDB}

	// Блокировка владельца: Redis, если настроен, иначе внутри процесса
	var (
		locker      appointmentsService.OwnerLocker
		rateLimiter *coordination.RateLimiter
	)
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		locker = coordination.NewOwnerLock(rdb, time.Duration(cfg.Scheduling.LockTTLSeconds)*time.Second, log)
		if cfg.Public.RateLimitRequests > 0 {
			rateLimiter = coordination.NewRateLimiter(rdb, cfg.Public.RateLimitRequests,
				time.Duration(cfg.Public.RateLimitWindowSeconds)*time.Second)
		}
		healthDeps["redis"] = healthHandler.PingerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		log.Info("Redis connected (addr=%s): distributed owner lock, public rate limit=%d/%ds",
			cfg.Redis.Addr, cfg.Public.RateLimitRequests, cfg.Public.RateLimitWindowSeconds)
	} else {
		locker = ownerlock.NewLocal()
		log.Warn("Redis is not configured: owner lock is process-local, public rate limit disabled")
	}

	// Репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	businessHoursRepository := businessHoursRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)
	financialRepository := financialRepo.NewRepository(wrappedDB)
	bookingLinkRepository := bookingLinkRepo.NewRepository(wrappedDB)

	// Сервисы
	businessHoursSvc := businessHoursService.NewService(businessHoursRepository, log)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		serviceRepository,
		businessHoursSvc,
		financialRepository,
		locker,
		txMgr,
		metricsCollector,
		log,
		appointmentsService.WithLocation(loc),
		appointmentsService.WithLockWait(time.Duration(cfg.Scheduling.LockWaitSeconds)*time.Second),
	)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		businessHoursSvc,
		metricsCollector,
		cfg.Scheduling.SlotStepMinutes,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(appointmentsSvc, clientRepository, log)
	publicBookingUseCase := publicBookingUC.NewUseCase(
		bookingLinkRepository,
		serviceRepository,
		businessHoursSvc,
		getAvailableSlotsUseCase,
		clientRepository,
		appointmentsSvc,
		loc,
		log,
	)

	// Handlers
	getBusinessHours := getBusinessHoursHandler.NewHandler(businessHoursSvc, log)
	updateBusinessHours := updateBusinessHoursHandler.NewHandler(businessHoursSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, loc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, loc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, loc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentsSvc, loc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	changeStatus := changeStatusHandler.NewHandler(appointmentsSvc, log)
	publicBooking := publicBookingHandler.NewHandler(publicBookingUseCase, loc, log)
	health := healthHandler.NewHandler(healthDeps, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (запись по ссылке, без X-Owner-ID)
	// ============================================================

	public := api.PathPrefix("/public").Subrouter()
	if rateLimiter != nil {
		public.Use(middleware.RateLimit(rateLimiter, log))
	}

	public.HandleFunc("/links/{slug}", publicBooking.HandleInfo).Methods(http.MethodGet)
	public.HandleFunc("/links/{slug}/slots", publicBooking.HandleSlots).Methods(http.MethodGet)
	public.HandleFunc("/links/{slug}/bookings", publicBooking.HandleSubmit).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Owner-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Рабочие часы ---
	protected.HandleFunc("/business-hours", getBusinessHours.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/business-hours", updateBusinessHours.Handle).Methods(http.MethodPut)

	// --- Календарь ---
	protected.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/appointments/{appointmentId}/status", changeStatus.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
