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

	createBookingHandler "github.com/m04kA/SMC-DroneBookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-DroneBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-DroneBookingService/internal/api/handlers/get_booking"
	getCompanyBookingsHandler "github.com/m04kA/SMC-DroneBookingService/internal/api/handlers/get_company_bookings"
	getCompanyContactsHandler "github.com/m04kA/SMC-DroneBookingService/internal/api/handlers/get_company_contacts"
	getServiceDetailHandler "github.com/m04kA/SMC-DroneBookingService/internal/api/handlers/get_service_detail"
	listCategoriesHandler "github.com/m04kA/SMC-DroneBookingService/internal/api/handlers/list_categories"
	listServicesHandler "github.com/m04kA/SMC-DroneBookingService/internal/api/handlers/list_services"
	"github.com/m04kA/SMC-DroneBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DroneBookingService/internal/catalog"
	"github.com/m04kA/SMC-DroneBookingService/internal/config"
	availabilityCache "github.com/m04kA/SMC-DroneBookingService/internal/infra/cache/availability"
	bookingRepo "github.com/m04kA/SMC-DroneBookingService/internal/infra/storage/booking"
	contactRepo "github.com/m04kA/SMC-DroneBookingService/internal/infra/storage/contact"
	"github.com/m04kA/SMC-DroneBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-DroneBookingService/internal/migrations"
	bookingsService "github.com/m04kA/SMC-DroneBookingService/internal/service/bookings"
	contactsService "github.com/m04kA/SMC-DroneBookingService/internal/service/contacts"
	checkAvailabilityUC "github.com/m04kA/SMC-DroneBookingService/internal/usecase/check_availability"
	submitBookingUC "github.com/m04kA/SMC-DroneBookingService/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-DroneBookingService/pkg/logger"
	"github.com/m04kA/SMC-DroneBookingService/pkg/metrics"
	"github.com/m04kA/SMC-DroneBookingService/pkg/txmanager"
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

	log.Info("Starting SMC-DroneBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Загружаем каталог услуг
	serviceCatalog, err := catalog.Load(cfg.Booking.CatalogFile)
	if err != nil {
		log.Fatal("Failed to load service catalog: %v", err)
	}
	log.Info("Service catalog loaded: %d asset categories", len(serviceCatalog.Categories()))

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

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Кеш занятости слотов (опционально)
	var (
		checkCache  checkAvailabilityUC.AvailabilityCache
		submitCache submitBookingUC.AvailabilityCache
	)
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		cache := availabilityCache.NewCache(rdb, time.Duration(cfg.Redis.TTL)*time.Second)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := cache.Ping(pingCtx); err != nil {
			log.Warn("Redis is unavailable, availability is read from the database: %v", err)
		}
		cancel()

		checkCache = cache
		submitCache = cache
		log.Info("Availability cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Клиент уведомлений
	var bookingNotifier submitBookingUC.Notifier = notifier.Nop{}
	if cfg.Notifier.Enabled() {
		bookingNotifier = notifier.NewClient(
			cfg.Notifier.URL,
			cfg.Notifier.Secret,
			time.Duration(cfg.Notifier.Timeout)*time.Second,
			log,
		)
		log.Info("Booking notifications enabled (url=%s, timeout=%ds, signed=%t)",
			cfg.Notifier.URL, cfg.Notifier.Timeout, cfg.Notifier.Secret != "")
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(db)
	contactRepository := contactRepo.NewRepository(db)
	txManager := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	contactSvc := contactsService.NewService(contactRepository, log)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		checkCache,
		metricsCollector,
		log,
	)

	submitBookingUseCase := submitBookingUC.NewUseCase(
		bookingRepository,
		contactRepository,
		serviceCatalog,
		checkAvailabilityUseCase,
		submitCache,
		middleware.ContextSessions{},
		bookingNotifier,
		txManager,
		metricsCollector,
		cfg.Booking.Scope(),
		log,
	)

	// Инициализируем handlers
	listCategories := listCategoriesHandler.NewHandler(serviceCatalog, log)
	listServices := listServicesHandler.NewHandler(serviceCatalog, log)
	getServiceDetail := getServiceDetailHandler.NewHandler(serviceCatalog, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(checkAvailabilityUseCase, cfg.Booking.Scope(), log)
	createBooking := createBookingHandler.NewHandler(submitBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCompanyBookings := getCompanyBookingsHandler.NewHandler(bookingSvc, log)
	getCompanyContacts := getCompanyContactsHandler.NewHandler(contactSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог категорий и услуг
	api.HandleFunc("/categories", listCategories.Handle).Methods(http.MethodGet)
	api.HandleFunc("/categories/{category}/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceType}", getServiceDetail.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-Company-ID)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Занятость слотов объекта
	protected.HandleFunc("/assets/{assetId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Отправка бронирования (с ограничением частоты)
	var submitHandler http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
		submitHandler = limiter.Middleware(submitHandler)
		log.Info("Submission rate limit enabled (%d/min, burst %d)", cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
	}
	protected.Handle("/bookings", submitHandler).Methods(http.MethodPost)

	// Бронирования и контакты компании
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/companies/{companyId}/bookings", getCompanyBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/companies/{companyId}/contacts", getCompanyContacts.Handle).Methods(http.MethodGet)

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
