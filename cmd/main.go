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

	addPaymentHandler "github.com/m04kA/EventsBookingService/internal/api/handlers/add_payment"
	archiveBookingHandler "github.com/m04kA/EventsBookingService/internal/api/handlers/archive_booking"
	cancelBookingHandler "github.com/m04kA/EventsBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/EventsBookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/EventsBookingService/internal/api/handlers/delete_booking"
	deletePaymentHandler "github.com/m04kA/EventsBookingService/internal/api/handlers/delete_payment"
	generateQuoteHandler "github.com/m04kA/EventsBookingService/internal/api/handlers/generate_quote"
	getBookingHandler "github.com/m04kA/EventsBookingService/internal/api/handlers/get_booking"
	healthHandler "github.com/m04kA/EventsBookingService/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/EventsBookingService/internal/api/handlers/list_bookings"
	listPaymentsHandler "github.com/m04kA/EventsBookingService/internal/api/handlers/list_payments"
	loginHandler "github.com/m04kA/EventsBookingService/internal/api/handlers/login"
	publicQuoteHandler "github.com/m04kA/EventsBookingService/internal/api/handlers/public_quote"
	updateBookingHandler "github.com/m04kA/EventsBookingService/internal/api/handlers/update_booking"
	validatePaymentHandler "github.com/m04kA/EventsBookingService/internal/api/handlers/validate_payment"
	"github.com/m04kA/EventsBookingService/internal/api/middleware"
	"github.com/m04kA/EventsBookingService/internal/config"
	"github.com/m04kA/EventsBookingService/internal/infra/document"
	bookingRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/booking"
	"github.com/m04kA/EventsBookingService/internal/infra/storage/migrations"
	paymentRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/payment"
	userRepo "github.com/m04kA/EventsBookingService/internal/infra/storage/user"
	"github.com/m04kA/EventsBookingService/internal/integrations/telegram"
	"github.com/m04kA/EventsBookingService/internal/scheduler"
	authService "github.com/m04kA/EventsBookingService/internal/service/auth"
	bookingsService "github.com/m04kA/EventsBookingService/internal/service/bookings"
	paymentsService "github.com/m04kA/EventsBookingService/internal/service/payments"
	addPaymentUC "github.com/m04kA/EventsBookingService/internal/usecase/add_payment"
	createBookingUC "github.com/m04kA/EventsBookingService/internal/usecase/create_booking"
	generateQuoteUC "github.com/m04kA/EventsBookingService/internal/usecase/generate_quote"
	validatePaymentUC "github.com/m04kA/EventsBookingService/internal/usecase/validate_payment"
	"github.com/m04kA/EventsBookingService/pkg/dbmetrics"
	"github.com/m04kA/EventsBookingService/pkg/logger"
	"github.com/m04kA/EventsBookingService/pkg/metrics"
	"github.com/m04kA/EventsBookingService/pkg/retry"
	"github.com/m04kA/EventsBookingService/pkg/txmanager"
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

	log.Info("Starting EventsBookingService...")

	location, err := cfg.Scheduler.Location()
	if err != nil {
		log.Fatal("Invalid scheduler timezone: %v", err)
	}

	// Метрики (если включены); nil-коллектор безопасен для всех вызовов
	var metricsCollector *metrics.Metrics
	var dbRecorder dbmetrics.Recorder
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
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

	if cfg.Database.MigrateOnStart {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Обёртка нужна всегда: через неё работает txmanager, метрики пишутся только при recorder != nil
	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	queryTimeout := cfg.Storage.QueryTimeout()
	bookingRepository := bookingRepo.NewRepository(wrappedDB, queryTimeout)
	paymentRepository := paymentRepo.NewRepository(wrappedDB, queryTimeout)
	userRepository := userRepo.NewRepository(wrappedDB, queryTimeout)

	readPolicy := retry.Policy{
		MaxRetries: cfg.Storage.ReadRetries,
		BaseDelay:  cfg.Storage.ReadRetryBase(),
		MaxDelay:   cfg.Storage.ReadRetryMaxDelay(),
	}

	// Интеграции
	notifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, log)
	if err != nil {
		log.Fatal("Failed to initialize telegram client: %v", err)
	}
	quoteRenderer := document.NewQuoteRenderer(cfg.Document.CompanyName, cfg.Document.PublicURL)
	log.Info("Integrations initialized (telegram=%t)", notifier.Enabled())

	// Сервисы
	authSvc, err := authService.NewService(
		userRepository,
		authService.TokenConfig{
			Secret: []byte(cfg.Auth.JWTSecret),
			TTL:    cfg.Auth.TokenTTL(),
			Issuer: cfg.Auth.Issuer,
		},
		cfg.Auth.BcryptCost,
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize auth service: %v", err)
	}

	if cfg.Auth.BootstrapUsername != "" {
		bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 10*time.Second)
		created, err := authSvc.EnsureBootstrapAdmin(
			bootstrapCtx,
			cfg.Auth.BootstrapUsername,
			cfg.Auth.BootstrapPassword,
			cfg.Auth.BootstrapEmail,
		)
		cancelBootstrap()
		if err != nil {
			log.Fatal("Failed to bootstrap admin user: %v", err)
		}
		if created {
			log.Info("Bootstrap admin %q created", cfg.Auth.BootstrapUsername)
		}
	}

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		paymentRepository,
		txMgr,
		quoteRenderer,
		metricsCollector,
		readPolicy,
		log,
	)
	paymentSvc := paymentsService.NewService(
		bookingRepository,
		paymentRepository,
		txMgr,
		readPolicy,
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(bookingRepository, notifier, metricsCollector, log)
	generateQuoteUseCase := generateQuoteUC.NewUseCase(bookingRepository, paymentRepository, txMgr, metricsCollector, log)
	addPaymentUseCase := addPaymentUC.NewUseCase(bookingRepository, paymentRepository, txMgr, metricsCollector, log)
	validatePaymentUseCase := validatePaymentUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		txMgr,
		notifier,
		metricsCollector,
		log,
	)

	// Планировщик проверки дедлайнов
	var sweepScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sweeper := scheduler.NewDeadlineSweeper(
			bookingRepository,
			paymentRepository,
			notifier,
			metricsCollector,
			&scheduler.RealTimeProvider{Location: location},
			log,
		)
		sweepScheduler, err = scheduler.New(cfg.Scheduler.DeadlineSweep, location, sweeper, log)
		if err != nil {
			log.Fatal("Failed to initialize scheduler: %v", err)
		}
		sweepScheduler.Start()
		log.Info("Deadline sweep scheduled (%s, %s)", cfg.Scheduler.DeadlineSweep, location)
	}

	// Handlers
	health := healthHandler.NewHandler(wrappedDB, log)
	login := loginHandler.NewHandler(authSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	publicQuote := publicQuoteHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	archiveBooking := archiveBookingHandler.NewHandler(bookingSvc, log)
	generateQuote := generateQuoteHandler.NewHandler(generateQuoteUseCase, log)
	addPayment := addPaymentHandler.NewHandler(addPaymentUseCase, log)
	validatePayment := validatePaymentHandler.NewHandler(validatePaymentUseCase, log)
	listPayments := listPaymentsHandler.NewHandler(paymentSvc, log)
	deletePayment := deletePaymentHandler.NewHandler(paymentSvc, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// Заявка от клиента
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Котировка для клиента по ссылке
	api.HandleFunc("/public/bookings/{bookingId}/quote", publicQuote.JSON).Methods(http.MethodGet)
	api.HandleFunc("/public/bookings/{bookingId}/quote.pdf", publicQuote.PDF).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authSvc, log))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/quote", generateQuote.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/archive", archiveBooking.Archive).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/archive", archiveBooking.Restore).Methods(http.MethodDelete)

	// --- Платежи ---
	protected.HandleFunc("/payments", listPayments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/payments", addPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/payments/validate", validatePayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{paymentId}", deletePayment.Handle).Methods(http.MethodDelete)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if sweepScheduler != nil {
		if err := sweepScheduler.Stop(shutdownCtx); err != nil {
			log.Error("Scheduler stop interrupted: %v", err)
		}
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
