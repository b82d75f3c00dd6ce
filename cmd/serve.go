package main

import (
	"context"
	"database/sql"
	"errors"
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
	"github.com/spf13/cobra"

	createParkingBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_parking_booking"
	createServiceBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_service_booking"
	deleteBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/delete_booking"
	exportBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/export_bookings"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getBookingsByStatusHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_bookings_by_status"
	getCustomerBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_customer_bookings"
	getFacilityConfigHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_facility_config"
	getServiceScheduleHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_service_schedule"
	manageFacilityConfigHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/manage_facility_config"
	manageServicesHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/manage_services"
	manageSpotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/manage_spots"
	patchBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/patch_booking"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	facilityCache "github.com/m04kA/SMC-ParkingService/internal/infra/cache/facility"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/customer"
	facilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/facility"
	spotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/spot"
	vehicleServiceRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicleservice"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/payment"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-ParkingService/internal/service/catalog"
	configService "github.com/m04kA/SMC-ParkingService/internal/service/config"
	reportsService "github.com/m04kA/SMC-ParkingService/internal/service/reports"
	spotsService "github.com/m04kA/SMC-ParkingService/internal/service/spots"
	createBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ParkingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ParkingService/pkg/confirmation"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve()
		},
	}
}

func serve() error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-ParkingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены); nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	spotRepository := spotRepo.NewRepository(wrappedDB)
	serviceRepository := vehicleServiceRepo.NewRepository(wrappedDB)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	facilityRepository := facilityRepo.NewRepository(wrappedDB)

	// Кеш конфигурации парковки (Redis опционален)
	var rdb redis.Cmdable
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, cache will fall back to database: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Addr)
		}
		cancel()
		rdb = client
	}
	facility := facilityCache.NewCache(facilityRepository, rdb, time.Duration(cfg.Redis.CacheTTL)*time.Second, log)

	// Платежный шлюз
	var gateway createBookingUC.PaymentGateway
	if cfg.Payment.ApproveAll {
		gateway = payment.ApproveAll{}
		log.Warn("Payment gateway disabled: all charges are approved")
	} else {
		gateway = payment.NewClient(cfg.Payment.URL, time.Duration(cfg.Payment.Timeout)*time.Second, log)
		log.Info("Payment client initialized (url=%s, timeout=%ds)", cfg.Payment.URL, cfg.Payment.Timeout)
	}

	// Часовой пояс парковки: расписания и календарные даты трактуются в нем
	loc := cfg.Location()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		spotRepository,
		serviceRepository,
		facility,
		customerRepository,
		txMgr,
		confirmation.NewDefaultGenerator(),
		cfg.Booking.ConfirmationAttempts,
		loc,
		log,
	)
	configSvc := configService.NewService(facilityRepository, facility, txMgr, log)
	spotSvc := spotsService.NewService(spotRepository, log)
	catalogSvc := catalogService.NewService(serviceRepository, log)
	reportSvc := reportsService.NewService(bookingSvc, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(bookingSvc, gateway, metricsCollector, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookingRepository, serviceRepository, facility, log)

	// Инициализируем handlers
	createParkingBooking := createParkingBookingHandler.NewHandler(createBookingUseCase, loc, log)
	createServiceBooking := createServiceBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, loc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getBookingsByStatus := getBookingsByStatusHandler.NewHandler(bookingSvc, log)
	getServiceSchedule := getServiceScheduleHandler.NewHandler(bookingSvc, log)
	patchBooking := patchBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getFacilityConfig := getFacilityConfigHandler.NewHandler(configSvc, log)
	manageFacilityConfig := manageFacilityConfigHandler.NewHandler(configSvc, log)
	manageSpots := manageSpotsHandler.NewHandler(spotSvc, log)
	manageServices := manageServicesHandler.NewHandler(catalogSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(reportSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; идентификация из заголовков шлюза для всех маршрутов
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/config", getFacilityConfig.HandleActive).Methods(http.MethodGet)
	api.HandleFunc("/spots", manageSpots.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/spots/{spotId}", manageSpots.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/services", manageServices.HandleList).Methods(http.MethodGet)
	// schedule регистрируется раньше /services/{serviceId}
	api.HandleFunc("/services/schedule", getServiceSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", manageServices.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{kind}/confirmation/{code}", getBooking.HandleByConfirmation).Methods(http.MethodGet)

	// --- Создание бронирований (анонимно или от имени аккаунта) ---
	create := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.ClientTTL)*time.Second)
		create.Use(limiter.Middleware)
		log.Info("Rate limit on booking creation: %.1f rps, burst %d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	create.HandleFunc("/parking/bookings/incremental", createParkingBooking.HandleIncremental).Methods(http.MethodPost)
	create.HandleFunc("/parking/bookings/monthly", createParkingBooking.HandleMonthly).Methods(http.MethodPost)
	create.HandleFunc("/services/{serviceId}/bookings", createServiceBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// CUSTOMER ROUTES (требуют X-Account-ID header)
	// ============================================================

	customer := api.PathPrefix("/customers/me").Subrouter()
	customer.Use(middleware.RequireAccount)
	customer.HandleFunc("/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Employee: true)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireEmployee)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", getBookingsByStatus.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", patchBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/reports/bookings", exportBookings.Handle).Methods(http.MethodGet)

	// --- Конфигурация парковки ---
	admin.HandleFunc("/configs", getFacilityConfig.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/configs", manageFacilityConfig.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/configs/{configId}", getFacilityConfig.HandleGetByID).Methods(http.MethodGet)
	admin.HandleFunc("/configs/{configId}/activate", manageFacilityConfig.HandleActivate).Methods(http.MethodPost)
	admin.HandleFunc("/configs/{configId}/schedules/{day}", manageFacilityConfig.HandleUpsertSchedule).Methods(http.MethodPut)
	admin.HandleFunc("/configs/{configId}/schedules/{day}", manageFacilityConfig.HandleDeleteSchedule).Methods(http.MethodDelete)

	// --- Места и услуги ---
	admin.HandleFunc("/spots", manageSpots.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/spots/{spotId}", manageSpots.HandleUpdate).Methods(http.MethodPatch)
	admin.HandleFunc("/spots/{spotId}", manageSpots.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/services", manageServices.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", manageServices.HandleUpdate).Methods(http.MethodPatch)
	admin.HandleFunc("/services/{serviceId}", manageServices.HandleDelete).Methods(http.MethodDelete)

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
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		close(stopMetricsCh)
		return fmt.Errorf("server failed: %w", err)
	}

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
	return nil
}
