package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
	"tourguide/internal/config"
	"tourguide/internal/database"
	handlers "tourguide/internal/handler"
	"tourguide/internal/middleware"
	"tourguide/internal/repository"
	"tourguide/internal/service"
	"tourguide/internal/storage"
)

const limiterIdleTimeout = 10 * time.Minute

type App struct {
	Cfg      *config.Config
	DB       database.MethodsDB
	Services *service.Service
	Handler  http.Handler

	authLimiter *middleware.IPRateLimiter
}

// New connects to PostgreSQL and MinIO and wires repositories, services and
// the HTTP handler chain.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg.JWTSecretKey == "" {
		return nil, errors.New("JWT_SECRET_KEY не установлен")
	}

	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}

	if cfg.AutoMigrate {
		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			db.CloseDB()
			return nil, err
		}
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("не удалось инициализировать MinIO: %w", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient)
	h := handlers.NewHandlers(services, cfg)

	limiter := middleware.NewIPRateLimiter(cfg.AuthRateLimit.PerMinute, cfg.AuthRateLimit.Burst)
	router := handlers.NewRouter(
		h,
		middleware.AuthMiddleware(services.Auth),
		middleware.RateLimitMiddleware(limiter),
	)

	handler := middleware.Chain(
		router,
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
		middleware.RecoverMiddleware,
	)

	return &App{
		Cfg:         cfg,
		DB:          db,
		Services:    services,
		Handler:     handler,
		authLimiter: limiter,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then drains connections within
// ShutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	defer a.DB.CloseDB()

	go a.authLimiter.RunCleanup(ctx, limiterIdleTimeout)

	addr := fmt.Sprintf(":%d", a.Cfg.ServerPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           a.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Сервер запущен на %s", addr)
		log.Printf("База данных: %s", a.Cfg.DB.DbNAME)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("ошибка запуска сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Останавливаем сервер...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("сервер остановлен принудительно: %w", err)
	}

	log.Println("Сервер остановлен")
	return nil
}

// Migrate applies the schema file without starting the server.
func Migrate(cfg *config.Config) error {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	return db.RunMigrations(cfg.MigrationsPath)
}
