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

	cancelAppointmentHandler "github.com/homemcom/AgendaService/internal/api/handlers/cancel_appointment"
	confirmAppointmentHandler "github.com/homemcom/AgendaService/internal/api/handlers/confirm_appointment"
	createBookingHandler "github.com/homemcom/AgendaService/internal/api/handlers/create_booking"
	createPublicBookingHandler "github.com/homemcom/AgendaService/internal/api/handlers/create_public_booking"
	createRecurringBlockHandler "github.com/homemcom/AgendaService/internal/api/handlers/create_recurring_block"
	createWorkingHoursHandler "github.com/homemcom/AgendaService/internal/api/handlers/create_working_hours"
	deleteRecurringBlockHandler "github.com/homemcom/AgendaService/internal/api/handlers/delete_recurring_block"
	deleteWorkingHoursHandler "github.com/homemcom/AgendaService/internal/api/handlers/delete_working_hours"
	getAvailableSlotsHandler "github.com/homemcom/AgendaService/internal/api/handlers/get_available_slots"
	getRecurringBlocksHandler "github.com/homemcom/AgendaService/internal/api/handlers/get_recurring_blocks"
	getSalesHandler "github.com/homemcom/AgendaService/internal/api/handlers/get_sales"
	getShopAppointmentsHandler "github.com/homemcom/AgendaService/internal/api/handlers/get_shop_appointments"
	getWorkingHoursHandler "github.com/homemcom/AgendaService/internal/api/handlers/get_working_hours"
	recordSaleHandler "github.com/homemcom/AgendaService/internal/api/handlers/record_sale"
	rescheduleAppointmentHandler "github.com/homemcom/AgendaService/internal/api/handlers/reschedule_appointment"
	"github.com/homemcom/AgendaService/internal/api/middleware"
	"github.com/homemcom/AgendaService/internal/config"
	appointmentRepo "github.com/homemcom/AgendaService/internal/infra/storage/appointment"
	cancellationRepo "github.com/homemcom/AgendaService/internal/infra/storage/cancellation"
	clientRepo "github.com/homemcom/AgendaService/internal/infra/storage/client"
	recurringBlockRepo "github.com/homemcom/AgendaService/internal/infra/storage/recurringblock"
	saleRepo "github.com/homemcom/AgendaService/internal/infra/storage/sale"
	serviceRepo "github.com/homemcom/AgendaService/internal/infra/storage/service"
	shopRepo "github.com/homemcom/AgendaService/internal/infra/storage/shop"
	workingHoursRepo "github.com/homemcom/AgendaService/internal/infra/storage/workinghours"
	billingServiceClient "github.com/homemcom/AgendaService/internal/integrations/billingservice"
	appointmentsService "github.com/homemcom/AgendaService/internal/service/appointments"
	salesService "github.com/homemcom/AgendaService/internal/service/sales"
	scheduleService "github.com/homemcom/AgendaService/internal/service/schedule"
	createBookingUC "github.com/homemcom/AgendaService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/homemcom/AgendaService/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/homemcom/AgendaService/internal/usecase/reschedule_appointment"
	"github.com/homemcom/AgendaService/pkg/dbmetrics"
	"github.com/homemcom/AgendaService/pkg/logger"
	"github.com/homemcom/AgendaService/pkg/metrics"
	"github.com/homemcom/AgendaService/pkg/simpletxmanager"
	"github.com/homemcom/AgendaService/pkg/txmanager"
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

	log.Info("Starting AgendaService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Инициализируем клиент биллинга: при выключенном биллинге
	// все магазины считаются подписанными
	var billingClient createBookingUC.BillingServiceClient
	if cfg.BillingService.Enabled {
		billingClient = billingServiceClient.NewClient(
			cfg.BillingService.URL,
			time.Duration(cfg.BillingService.Timeout)*time.Second,
			log,
		)
		log.Info("BillingService client initialized (url=%s, timeout=%ds)",
			cfg.BillingService.URL, cfg.BillingService.Timeout)
	} else {
		billingClient = billingServiceClient.NewDisabledClient()
		log.Info("BillingService disabled, subscription checks are skipped")
	}

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Репозитории и менеджер транзакций (с метриками или без)
	var (
		dbExec dbmetrics.DBExecutor = db
		txMgr  TxManager            = simpletxmanager.NewTransactionManager(db)
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		dbExec = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	}

	shopRepository := shopRepo.NewRepository(dbExec)
	serviceRepository := serviceRepo.NewRepository(dbExec)
	clientRepository := clientRepo.NewRepository(dbExec)
	appointmentRepository := appointmentRepo.NewRepository(dbExec)
	cancellationRepository := cancellationRepo.NewRepository(dbExec)
	workingHoursRepository := workingHoursRepo.NewRepository(dbExec)
	recurringBlockRepository := recurringBlockRepo.NewRepository(dbExec)
	saleRepository := saleRepo.NewRepository(dbExec)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		cancellationRepository,
		shopRepository,
		txMgr,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		workingHoursRepository,
		recurringBlockRepository,
		shopRepository,
		log,
	)
	salesSvc := salesService.NewService(
		saleRepository,
		shopRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		shopRepository,
		serviceRepository,
		appointmentRepository,
		workingHoursRepository,
		recurringBlockRepository,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		shopRepository,
		serviceRepository,
		clientRepository,
		appointmentRepository,
		workingHoursRepository,
		recurringBlockRepository,
		billingClient,
		txMgr,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		shopRepository,
		appointmentRepository,
		cancellationRepository,
		workingHoursRepository,
		recurringBlockRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createPublicBooking := createPublicBookingHandler.NewHandler(createBookingUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getShopAppointments := getShopAppointmentsHandler.NewHandler(appointmentsSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(scheduleSvc, log)
	createWorkingHours := createWorkingHoursHandler.NewHandler(scheduleSvc, log)
	deleteWorkingHours := deleteWorkingHoursHandler.NewHandler(scheduleSvc, log)
	getRecurringBlocks := getRecurringBlocksHandler.NewHandler(scheduleSvc, log)
	createRecurringBlock := createRecurringBlockHandler.NewHandler(scheduleSvc, log)
	deleteRecurringBlock := deleteRecurringBlockHandler.NewHandler(scheduleSvc, log)
	recordSale := recordSaleHandler.NewHandler(salesSvc, log)
	getSales := getSalesHandler.NewHandler(salesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (страница онлайн-записи, без аутентификации)
	// ============================================================

	public := api.PathPrefix("/public").Subrouter()

	// Доступные слоты на дату
	public.HandleFunc("/shops/{shopSlug}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Самостоятельная запись клиента
	public.HandleFunc("/shops/{shopSlug}/bookings", createPublicBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (кабинет владельца, требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/shops/{shopSlug}/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/shops/{shopSlug}/appointments", getShopAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopSlug}/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/shops/{shopSlug}/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/shops/{shopSlug}/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPost)

	// --- Расписание ---
	protected.HandleFunc("/shops/{shopSlug}/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopSlug}/working-hours", createWorkingHours.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/shops/{shopSlug}/working-hours/{blockId}", deleteWorkingHours.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/shops/{shopSlug}/recurring-blocks", getRecurringBlocks.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopSlug}/recurring-blocks", createRecurringBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/shops/{shopSlug}/recurring-blocks/{blockId}", deleteRecurringBlock.Handle).Methods(http.MethodDelete)

	// --- Продажи ---
	protected.HandleFunc("/shops/{shopSlug}/sales", recordSale.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/shops/{shopSlug}/sales", getSales.Handle).Methods(http.MethodGet)

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
