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

	"vn-server/internal/config"
	"vn-server/internal/database"
	"vn-server/internal/handler"
	"vn-server/internal/interfaces"
	"vn-server/internal/logger"
	"vn-server/internal/messaging"
	"vn-server/internal/middleware"
	"vn-server/internal/service"
	"vn-server/internal/story"
	"vn-server/pkg/migration"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

func main() {
	// .env нужен только для локального запуска
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
		Service:     "vn-server",
		Development: cfg.LogDev,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	log.Info("Configuration loaded",
		zap.String("port", cfg.Port),
		zap.String("dsn", cfg.RedactedDSN()),
		zap.String("startScene", cfg.StartSceneID),
		zap.Bool("strictContent", cfg.StrictContent),
		zap.Bool("requireIdempotencyKey", cfg.RequireIdemKey),
		zap.Bool("restoreAffinityOnLoad", cfg.RestoreAffinity),
	)

	if err := run(cfg, log); err != nil {
		log.Fatal("Server stopped with error", zap.Error(err))
	}
	log.Info("Server exiting")
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- PostgreSQL ---
	pool, err := setupPostgres(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Миграции применяются при каждом старте, golang-migrate пропускает уже примененные
	migrator := migration.NewMigrator(migration.Config{
		MigrationsFS:   database.MigrationsFS,
		MigrationsPath: database.MigrationsPath,
	}, pool, zerolog.New(os.Stdout).With().Timestamp().Logger())
	if err := migrator.Up(ctx); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	// --- Story graph ---
	// Граф собирается один раз и дальше только читается, без блокировок
	graph, err := service.LoadStoryGraph(ctx,
		database.NewPgStoryContentRepository(log), pool,
		story.BuildOptions{Strict: cfg.StrictContent}, cfg.StartSceneID, log)
	if err != nil {
		return err
	}

	// --- Events ---
	// Без брокера события просто отбрасываются, игровые операции от этого не зависят
	var publisher interfaces.EventPublisher = messaging.NopEventPublisher{}
	if cfg.RabbitMQURL != "" {
		conn, err := messaging.Connect(ctx, cfg.RabbitMQURL, cfg.RabbitMQAttempts, cfg.RabbitMQDelay, log)
		if err != nil {
			return err
		}
		defer conn.Close()
		rabbitPublisher, err := messaging.NewRabbitMQEventPublisher(conn, cfg.EventsExchange, log)
		if err != nil {
			return err
		}
		defer rabbitPublisher.Close()
		publisher = rabbitPublisher
	} else {
		log.Warn("RABBITMQ_URL not set, gameplay events are dropped")
	}

	// --- Dependency Injection ---
	opts := service.Options{
		StartSceneID:          cfg.StartSceneID,
		RequireIdempotencyKey: cfg.RequireIdemKey,
		RestoreAffinityOnLoad: cfg.RestoreAffinity,
	}
	// Репозитории не хранят пул: querier передается в каждый вызов, так они работают и в транзакции
	tx := database.NewPgTransactor(pool)
	playerRepo := database.NewPgPlayerRepository(log)
	affinityRepo := database.NewPgAffinityRepository(log)
	slotRepo := database.NewPgSaveSlotRepository(log)
	selectionRepo := database.NewPgSelectionRepository(log)

	ledger := service.NewAffinityLedger(affinityRepo, log)
	renderer := story.NewRenderer(cfg.ProtagonistID, cfg.NameTokens)

	gameService := service.NewGameService(graph, renderer, ledger, playerRepo, selectionRepo, pool, tx, publisher, opts, log)
	saveService := service.NewSaveService(graph, ledger, playerRepo, slotRepo, pool, tx, publisher, opts, log)
	playerService := service.NewPlayerService(playerRepo, pool, opts, log)

	// Токены выпускает внешний auth-сервис, здесь только проверка подписи
	verifier, err := middleware.NewJWTVerifier(cfg.JWTSecret, log)
	if err != nil {
		return err
	}

	// --- Rate limiter ---
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = setupRedis(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	} else {
		log.Warn("REDIS_ADDR not set, using in-memory rate limiter")
	}
	// nil-клиент означает лимитер в памяти.
	limiterStore := middleware.NewRateLimitStore(redisClient, time.Second, cfg.RateLimitPerSec)

	// --- HTTP Server Setup (Gin) ---
	// Debug-режим gin только при LOG_LEVEL=debug
	gin.SetMode(gin.ReleaseMode)
	if strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	// Порядок важен: Recovery первым, затем логгер запросов
	router.Use(gin.Recovery())
	router.Use(middleware.GinZapLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", handler.IdempotencyKeyHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Must be attached before any route is registered. Serves /metrics.
	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	// /health проверяет и БД, чтобы оркестратор видел потерю соединения
	healthHandler := func(c *gin.Context) {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	gameHandler := handler.NewGameHandler(gameService, saveService, playerService, log)
	gameHandler.RegisterRoutes(
		router.Group(cfg.BasePath),
		middleware.GinAuth(verifier, log),
		middleware.RateLimit(limiterStore, log),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Сервер в горутине, основной поток ждет сигнал или ошибку запуска
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("HTTP server listen error: %w", err)
		}
	case <-ctx.Done():
	}

	// Даем текущим запросам до 10 секунд на завершение
	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP Server forced to shutdown", zap.Error(err))
	}
	return nil
}

// setupPostgres opens the pool and retries until the database answers a ping.
func setupPostgres(ctx context.Context, cfg *config.Config, log *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("unable to parse postgres config: %w", err)
	}
	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MaxConnIdleTime = cfg.DBIdleTimeout

	const maxRetries = 20
	const retryDelay = 3 * time.Second
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			err = pool.Ping(pingCtx)
			cancel()
			if err == nil {
				log.Info("Connected to PostgreSQL", zap.Int("attempt", attempt))
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		log.Warn("Postgres connection failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", maxRetries, lastErr)
}

// setupRedis подключается к Redis для лимитера запросов.
// Пароль необязателен: пустой секрет значит Redis без AUTH.
func setupRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	password, _ := config.ReadSecret("redis_password", "REDIS_PASSWORD")
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: password,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.RedisAddr, err)
	}
	log.Info("Connected to Redis", zap.String("address", cfg.RedisAddr), zap.Int("db", cfg.RedisDB))
	return client, nil
}
