package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/enkellaering/admin-backend/internal/backend"
	"github.com/enkellaering/admin-backend/internal/config"
	"github.com/enkellaering/admin-backend/internal/database"
	"github.com/enkellaering/admin-backend/internal/handler"
	"github.com/enkellaering/admin-backend/internal/logger"
	"github.com/enkellaering/admin-backend/internal/middleware"
	"github.com/enkellaering/admin-backend/internal/repository"
	"github.com/enkellaering/admin-backend/internal/router"
	"github.com/enkellaering/admin-backend/internal/service"
	"github.com/enkellaering/admin-backend/internal/validator"
	"github.com/enkellaering/admin-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("backend", cfg.BackendBaseURL).
		Str("report_timezone", cfg.Location().String()).
		Msg("Starting Enkel Læring admin backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories & Clients ─────────────────────────────
	settingRepo := repository.NewSettingRepository(pool)
	snapshotRepo := repository.NewSnapshotRepository(pool)
	backendClient := backend.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout, log)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, service.NewRedisSessionStore(rdb))
	settingService := service.NewSettingService(settingRepo, log)
	revenueService := service.NewRevenueService(cfg, backendClient, settingService, rdb, log)
	archiveService := service.NewArchiveService(revenueService, snapshotRepo, log)
	teacherService := service.NewTeacherService(cfg, backendClient, authService, rdb, log)
	studentService := service.NewStudentService(backendClient)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:    handler.NewAuthHandler(authService, teacherService),
		Teacher: handler.NewTeacherHandler(teacherService),
		Student: handler.NewStudentHandler(studentService),
		Revenue: handler.NewRevenueHandler(revenueService, archiveService),
		Setting: handler.NewSettingHandler(settingService),
		System: handler.NewSystemHandler(map[string]handler.HealthCheck{
			"postgres": pool.Ping,
			"redis":    database.PingRedis(rdb),
		}, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	publicLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	snapshotWorker := worker.NewSnapshotWorker(archiveService, cfg.SnapshotAdminIDs, cfg.SnapshotCron, cfg.Location(), log)

	workers.Add(2)
	go func() {
		defer workers.Done()
		publicLimiter.RunCleanup(workerCtx)
	}()
	go func() {
		defer workers.Done()
		if err := snapshotWorker.Start(workerCtx); err != nil {
			log.Error().Err(err).Msg("Snapshot worker failed to start")
		}
	}()

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, publicLimiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers; a running snapshot job is allowed to finish.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
