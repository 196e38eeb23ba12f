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

	_ "github.com/lib/pq"

	"github.com/m04kA/FarmStand-PickupService/internal/app"
	"github.com/m04kA/FarmStand-PickupService/internal/config"
	"github.com/m04kA/FarmStand-PickupService/migrations"
	"github.com/m04kA/FarmStand-PickupService/pkg/dbmetrics"
	"github.com/m04kA/FarmStand-PickupService/pkg/logger"
	"github.com/m04kA/FarmStand-PickupService/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
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

	log.Info("Starting FarmStand-PickupService...")
	log.Info("Configuration loaded from %s (timezone=%s)", configPath, cfg.Pickup.Timezone)

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

	// Применяем миграции
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), time.Minute)
	if err := migrations.Apply(migrateCtx, db); err != nil {
		cancelMigrate()
		log.Fatal("Failed to apply migrations: %v", err)
	}
	cancelMigrate()
	log.Info("Database migrations applied")

	// Обёртка БД: метрики запросов и статистика пула (при nil коллекторе только проксирует)
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	// Собираем зависимости и роутер
	application := app.New(cfg, wrappedDB, metricsCollector, log)
	router := application.Router()

	if cfg.Stripe.SecretKey == "" {
		log.Warn("Stripe secret key is not set: checkout will answer 503")
	}
	if cfg.Admin.Token == "" {
		log.Warn("Admin token is not set: admin routes are disabled")
	}

	// Фоновые задачи
	var sched interface {
		Start()
		Stop(ctx context.Context)
	}
	if cfg.Scheduler.Enabled {
		s, err := application.Scheduler()
		if err != nil {
			log.Fatal("Failed to configure scheduler: %v", err)
		}
		s.Start()
		sched = s
		log.Info("Scheduler started")
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
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

	if sched != nil {
		sched.Stop(shutdownCtx)
		log.Info("Scheduler stopped")
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
