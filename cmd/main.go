package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/confirm_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_booking"
	getShopConfigHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_shop_config"
	requestBookingHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/request_booking"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/config"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
	cancelBookingUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/cancel_booking"
	confirmBookingUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/confirm_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
	getPendingBookingUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_pending_booking"
	requestBookingUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/request_booking"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
)

const defaultConfigPath = "config.toml"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-BarberBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Фоновые задачи живут до получения сигнала
	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Каталог услуг и правила сетки
	catalog := buildCatalog(cfg)
	settings, err := buildEngineSettings(cfg)
	if err != nil {
		log.Fatal("Invalid schedule configuration: %v", err)
	}
	log.Info("Schedule: %s-%s every %d min, %d services, booking window %d days",
		cfg.Schedule.OpenTime, cfg.Schedule.CloseTime, cfg.Schedule.SlotIntervalMinutes,
		len(cfg.Services), cfg.Schedule.MaxBookingDays)

	// Хранилище сетки занятости
	occupancyStore, occupancyCloser, err := buildOccupancyStore(appCtx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize occupancy grid: %v", err)
	}
	defer occupancyCloser.Close()

	// Хранилище заявок на подтверждение
	pendingStore, pendingCloser, err := buildPendingStore(appCtx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize pending store: %v", err)
	}
	defer pendingCloser.Close()

	// Отправка кодов подтверждения
	notifier, err := buildNotifier(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer: %v", err)
	}

	engine := availability.NewEngine(occupancyStore, settings, metricsCollector, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(engine, catalog, log)

	requestBookingUseCase := requestBookingUC.NewUseCase(
		engine,
		catalog,
		pendingStore,
		notifier,
		metricsCollector,
		time.Duration(cfg.Mail.TimeoutSeconds)*time.Second,
		log,
	)

	confirmBookingUseCase := confirmBookingUC.NewUseCase(pendingStore, engine, metricsCollector, log)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(pendingStore, metricsCollector, log)
	getPendingBookingUseCase := getPendingBookingUC.NewUseCase(pendingStore, catalog, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	requestBooking := requestBookingHandler.NewHandler(requestBookingUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(getPendingBookingUseCase, log)
	getShopConfig := getShopConfigHandler.NewHandler(catalog, getShopConfigHandler.Schedule{
		OpenTime:            cfg.Schedule.OpenTime,
		CloseTime:           cfg.Schedule.CloseTime,
		SlotIntervalMinutes: cfg.Schedule.SlotIntervalMinutes,
		MaxBookingDays:      cfg.Schedule.MaxBookingDays,
		WorkingDays:         cfg.Schedule.WorkingDays,
		Timezone:            settings.Location.String(),
		PendingTTLMinutes:   cfg.Pending.TTLMinutes,
	}, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Ограничение частоты только для запросов, отправляющих письма и проверяющих коды
	limited := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, metricsCollector, log)
		limited = func(h http.HandlerFunc) http.Handler { return limiter.Middleware(h) }
		log.Info("Rate limiting enabled (%d req/min, burst %d)", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Каталог услуг и расписание
	api.HandleFunc("/config", getShopConfig.Handle).Methods(http.MethodGet)

	// Свободные слоты на дату для набора услуг
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Заявка на бронирование, код уходит на email клиента
	api.Handle("/bookings", limited(requestBooking.Handle)).Methods(http.MethodPost)

	// Состояние заявки
	api.HandleFunc("/bookings/{token}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена заявки до подтверждения
	api.HandleFunc("/bookings/{token}", cancelBooking.Handle).Methods(http.MethodDelete)

	// Подтверждение кодом
	api.Handle("/bookings/{token}/confirm", limited(confirmBooking.Handle)).Methods(http.MethodPost)

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

	// Останавливаем фоновую очистку заявок
	stopApp()

	log.Info("Server stopped gracefully")
}
