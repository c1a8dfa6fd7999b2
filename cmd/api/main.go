package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dockside/internal/api"
	"dockside/internal/config"
	"dockside/internal/database"
	"dockside/internal/domain"
	"dockside/internal/events"
	"dockside/internal/export"
	"dockside/internal/logging"
	"dockside/internal/metrics"
	"dockside/internal/notify"
	"dockside/internal/repository"
	"dockside/internal/service"
	"dockside/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	if err := loadSeedAccounts(cfg, &logger); err != nil {
		return err
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer repository.Close(redisClient)
	}
	sessions := initSessions(redisClient, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Backup.Enabled {
		backuper := database.NewBackuper(db, cfg.Backup, &logger)
		go backuper.Start(ctx)
	}

	bus := events.NewEventBus()
	sink := initSinks(cfg, &logger)
	dispatcher := worker.NewDispatcher(sink, worker.DefaultRetryPolicy(), &logger)
	dispatcher.ListenBus(bus)
	go dispatcher.Start(ctx)

	guard := service.NewGuard()
	auth := service.NewAuthService(db, sessions, cfg.Auth, &logger)
	tokens := service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours, sessions)
	yachts := service.NewYachtService(db, guard, bus, &logger)
	bookings := service.NewBookingService(db, guard, bus, &logger)
	exporter := export.NewExporter(db, cfg.Exports.Path, &logger)

	server := api.NewServer(cfg.HTTP, api.Deps{
		DB:       db,
		Auth:     auth,
		Tokens:   tokens,
		Yachts:   yachts,
		Bookings: bookings,
		Exporter: exporter,
	}, &logger)

	startMetrics(ctx, cfg, &logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Int("http_port", cfg.HTTP.Port).Msg("server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = server.Shutdown(shutdownCtx)
	logger.Info().Msg("server stopped")
	return nil
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := logging.Component(baseLogger, "api-main")

	return cfg, logger, closer, nil
}

// loadSeedAccounts дочитывает предзаданные аккаунты из отдельного файла.
// Файл необязателен: аккаунты могут быть заданы прямо в config.yaml.
func loadSeedAccounts(cfg *config.Config, logger *zerolog.Logger) error {
	seedPath := os.Getenv("SEED_ACCOUNTS_PATH")
	if seedPath == "" {
		seedPath = "configs/seed_accounts.yaml"
	}
	data, err := os.ReadFile(seedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		logger.Error().Err(err).Str("seed_path", seedPath).Msg("read seed accounts")
		return err
	}

	var seedConfig struct {
		Accounts []config.SeedAccount `yaml:"accounts"`
	}
	if err := yaml.Unmarshal(data, &seedConfig); err != nil {
		logger.Error().Err(err).Str("seed_path", seedPath).Msg("parse seed accounts")
		return err
	}

	cfg.Auth.SeedAccounts = append(cfg.Auth.SeedAccounts, seedConfig.Accounts...)
	if err := config.ValidateSeedAccounts(cfg.Auth.SeedAccounts); err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	logger.Info().Int("count", len(seedConfig.Accounts)).Msg("seed accounts loaded")
	return nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if !cfg.Redis.Enabled || cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(context.Background(), redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// initSessions выбирает хранилище сессий: Redis с резервом в памяти
// или только память, если Redis не настроен.
func initSessions(client *redis.Client, logger *zerolog.Logger) domain.SessionRepository {
	memory := repository.NewMemorySessionRepository()
	if client == nil {
		return memory
	}
	return repository.NewFailoverSessionRepository(
		repository.NewRedisSessionRepository(client),
		memory,
		logger,
	)
}

func initSinks(cfg *config.Config, logger *zerolog.Logger) domain.NotificationSink {
	sinks := []domain.NotificationSink{notify.NewLogSink(logger)}

	if cfg.Notifications.Telegram.Enabled {
		tg, err := notify.NewTelegramSink(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
		if err != nil {
			logger.Warn().Err(err).Msg("telegram sink init failed, continuing without it")
		} else {
			sinks = append(sinks, tg)
			logger.Info().Msg("telegram sink connected")
		}
	}

	if cfg.Notifications.AMQP.Enabled {
		mq, err := notify.NewAMQPSink(cfg.Notifications.AMQP.URL, cfg.Notifications.AMQP.Exchange)
		if err != nil {
			logger.Warn().Err(err).Msg("amqp sink init failed, continuing without it")
		} else {
			sinks = append(sinks, mq)
			logger.Info().Str("exchange", cfg.Notifications.AMQP.Exchange).Msg("amqp sink connected")
		}
	}

	return notify.NewMulti(logger, sinks...)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info().Int("port", port).Msg("metrics server started")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server stopped")
	}
}
