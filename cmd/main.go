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

	cancelReservationHandler "github.com/rkoto/TanaTours-ReservationService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/rkoto/TanaTours-ReservationService/internal/api/handlers/check_availability"
	createReservationHandler "github.com/rkoto/TanaTours-ReservationService/internal/api/handlers/create_reservation"
	getReservationHandler "github.com/rkoto/TanaTours-ReservationService/internal/api/handlers/get_reservation"
	getResourceReservationsHandler "github.com/rkoto/TanaTours-ReservationService/internal/api/handlers/get_resource_reservations"
	getTravelDatesHandler "github.com/rkoto/TanaTours-ReservationService/internal/api/handlers/get_travel_dates"
	getUnavailableDatesHandler "github.com/rkoto/TanaTours-ReservationService/internal/api/handlers/get_unavailable_dates"
	getUserReservationsHandler "github.com/rkoto/TanaTours-ReservationService/internal/api/handlers/get_user_reservations"
	"github.com/rkoto/TanaTours-ReservationService/internal/api/middleware"
	"github.com/rkoto/TanaTours-ReservationService/internal/config"
	reservationRepo "github.com/rkoto/TanaTours-ReservationService/internal/infra/storage/reservation"
	slotRepo "github.com/rkoto/TanaTours-ReservationService/internal/infra/storage/slot"
	catalogServiceClient "github.com/rkoto/TanaTours-ReservationService/internal/integrations/catalogservice"
	reservationsService "github.com/rkoto/TanaTours-ReservationService/internal/service/reservations"
	checkAvailabilityUC "github.com/rkoto/TanaTours-ReservationService/internal/usecase/check_availability"
	createReservationUC "github.com/rkoto/TanaTours-ReservationService/internal/usecase/create_reservation"
	getTravelDatesUC "github.com/rkoto/TanaTours-ReservationService/internal/usecase/get_travel_dates"
	getUnavailableDatesUC "github.com/rkoto/TanaTours-ReservationService/internal/usecase/get_unavailable_dates"
	"github.com/rkoto/TanaTours-ReservationService/pkg/dbmetrics"
	"github.com/rkoto/TanaTours-ReservationService/pkg/logger"
	"github.com/rkoto/TanaTours-ReservationService/pkg/metrics"
	"github.com/rkoto/TanaTours-ReservationService/pkg/simpletxmanager"
	"github.com/rkoto/TanaTours-ReservationService/pkg/txmanager"
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

	log.Info("Starting TanaTours-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент каталога
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog client initialized (url=%s, timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		slotRepository        *slotRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		slotRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		reservationRepository,
		catalogClient,
		log,
	)

	getUnavailableDatesUseCase := getUnavailableDatesUC.NewUseCase(
		reservationRepository,
		catalogClient,
		log,
	)

	getTravelDatesUseCase := getTravelDatesUC.NewUseCase(
		slotRepository,
		catalogClient,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		slotRepository,
		catalogClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getUnavailableDates := getUnavailableDatesHandler.NewHandler(getUnavailableDatesUseCase, log)
	getTravelDates := getTravelDatesHandler.NewHandler(getTravelDatesUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getResourceReservations := getResourceReservationsHandler.NewHandler(reservationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности периода аренды машины
	api.HandleFunc("/vehicles/{vehicleId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// Занятые даты машины для затенения календаря
	api.HandleFunc("/vehicles/{vehicleId}/unavailable-dates",
		getUnavailableDates.Handle).Methods(http.MethodGet)

	// Окна путешествий круиза с остатком мест
	api.HandleFunc("/trips/{tripId}/travel-dates",
		getTravelDates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Back-office ---
	// Список бронирований ресурса
	protected.HandleFunc("/resources/{resType}/{resourceId}/reservations",
		getResourceReservations.Handle).Methods(http.MethodGet)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
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
