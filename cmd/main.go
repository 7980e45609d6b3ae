package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/disasteralert/disasteralert/internal/config"
	v1 "github.com/disasteralert/disasteralert/internal/handler/http/v1"
	"github.com/disasteralert/disasteralert/internal/repository"
	"github.com/disasteralert/disasteralert/internal/service"
	"github.com/disasteralert/disasteralert/internal/webhook"
	"github.com/disasteralert/disasteralert/pkg/logger"
	"github.com/disasteralert/disasteralert/pkg/postgres"
	redisclient "github.com/disasteralert/disasteralert/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/disasteralert/disasteralert/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title DisasterAlert API
// @version 1.0
// @description Incident reporting service: submit disaster reports, filter them, comment, like and track status.
// @host localhost:4000
// @BasePath /
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.PostgresDSN()
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// newRecordStore выбирает реализацию хранилища по STORAGE_DRIVER
func newRecordStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (service.RecordStore, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if err := runMigrations(cfg, log); err != nil {
			return nil, nil, err
		}
		dbpool, err := postgres.NewPostgresDB(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		log.Info("Successfully connected to PostgreSQL")
		store, err := repository.NewPostgresStore(ctx, dbpool)
		if err != nil {
			dbpool.Close()
			return nil, nil, err
		}
		return store, dbpool.Close, nil
	default:
		log.WithField("file", cfg.DBFile).Info("Using JSON file store")
		return repository.NewFileStore(cfg.DBFile), func() {}, nil
	}
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация хранилища
	store, closeStore, err := newRecordStore(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize record store: %v", err)
	}
	defer closeStore()

	// Конвейер вебхуков поднимается только при настроенном WEBHOOK_URL
	var publisher webhook.Publisher = webhook.NewNoopPublisher()
	if cfg.WebhookURL != "" {
		redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")

		publisher = webhook.NewRedisPublisher(redisClient)

		webhookWorker := webhook.NewWorker(redisClient, log, cfg)
		webhookWorker.Start(ctx)
	}

	// Инициализация сервисов
	incidentService := service.NewIncidentService(store, service.NewUUIDGenerator(), log, cfg, publisher)

	// Инициализация хэндлеров
	handler := v1.NewHandler(incidentService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(v1.CORSMiddleware())
	handler.RegisterRoutes(router)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
