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
	"github.com/sirupsen/logrus"

	"github.com/kalinga-response/incident-core/internal/audit"
	"github.com/kalinga-response/incident-core/internal/client"
	"github.com/kalinga-response/incident-core/internal/config"
	"github.com/kalinga-response/incident-core/internal/dispatch"
	v1 "github.com/kalinga-response/incident-core/internal/handler/http/v1"
	"github.com/kalinga-response/incident-core/internal/location"
	"github.com/kalinga-response/incident-core/internal/models"
	"github.com/kalinga-response/incident-core/internal/realtime"
	"github.com/kalinga-response/incident-core/internal/repository"
	syncmgr "github.com/kalinga-response/incident-core/internal/sync"
	"github.com/kalinga-response/incident-core/pkg/logger"
	"github.com/kalinga-response/incident-core/pkg/postgres"
	redisclient "github.com/kalinga-response/incident-core/pkg/redis"
)

func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
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

// newSubscriber собирает realtime-транспорт согласно конфигурации.
// Ошибка подключения фатальна: лучше упасть на старте, чем молча
// остаться на одном опросе.
func newSubscriber(ctx context.Context, cfg *config.Config, log *logrus.Logger) (realtime.Subscriber, error) {
	switch cfg.RealtimeTransport {
	case "redis":
		redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("Successfully connected to Redis")
		return realtime.NewRedisSubscriber(redisClient, cfg.IncidentsChannel, log), nil
	case "kafka":
		return realtime.NewKafkaSubscriber(cfg.KafkaBrokers, cfg.IncidentsChannel, cfg.KafkaGroupID, log), nil
	case "off":
		log.Warn("Realtime transport disabled, relying on polling only")
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown realtime transport: %s", cfg.RealtimeTransport)
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

	// Аудит попыток захвата опционален и включается наличием DATABASE_URL
	var recorder dispatch.Recorder
	var auditor v1.AuditReader
	if cfg.DatabaseURL != "" {
		if err := runMigrations(cfg, log); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}

		dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer dbpool.Close()
		log.Info("Successfully connected to PostgreSQL")

		store := audit.NewStore(dbpool, log)
		recorder = store
		auditor = store
	}

	// Клиент координационного сервера и репозиторий с кэшем
	apiClient := client.New(cfg.APIBaseURL, cfg.APIToken, cfg.UpstreamTimeout)
	incidentRepo := repository.New(apiClient, log, cfg.ListCacheTTL, cfg.HistoryCacheTTL)

	// Realtime-подписчик
	subscriber, err := newSubscriber(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize realtime subscriber: %v", err)
	}

	// Менеджер синхронизации коллекции инцидентов
	manager := syncmgr.New(incidentRepo, subscriber, log, syncmgr.Options{
		RefreshInterval: cfg.RefreshInterval,
		IncludeResolved: cfg.IncludeResolved,
	})

	// Геолокация и движок авто-диспетчеризации
	watcher := location.NewWatcher()
	engine := dispatch.New(cfg.ResponderID, incidentRepo, manager, watcher, log, recorder, cfg.AutoDispatchEnabled)
	manager.OnNewIncident(func(incident models.Incident) {
		engine.Consider(ctx, incident)
	})

	if err := manager.Start(ctx); err != nil {
		log.Fatalf("Failed to start sync manager: %v", err)
	}
	defer manager.Close()

	// Инициализация хэндлеров
	handler := v1.NewHandler(manager, incidentRepo, engine, watcher, auditor, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	if len(cfg.APIKeys) > 0 {
		api.Use(v1.APIKeyAuthMiddleware(cfg, log))
	}
	handler.RegisterRoutes(api)

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
