package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/registry/internal/config"
	"github.com/stemsi/registry/internal/handler"
	"github.com/stemsi/registry/internal/logger"
	"github.com/stemsi/registry/internal/middleware"
	"github.com/stemsi/registry/internal/repository"
	"github.com/stemsi/registry/internal/router"
	"github.com/stemsi/registry/internal/service"
	"github.com/stemsi/registry/internal/validator"
	"github.com/stemsi/registry/internal/websocket"
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
		Str("data_dir", cfg.DataDir).
		Msg("Starting school registry")

	if !cfg.AuthEnabled() {
		log.Warn().Msg("ADMIN_PASSWORD_HASH is empty, write routes are unauthenticated")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Open Record Stores ────────────────────────────────────────────
	// A corrupt file is fatal: the store never becomes usable.
	stores, err := repository.Open(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open record stores")
	}
	log.Info().
		Int("classes", stores.Classes.Len()).
		Int("students", stores.Students.Len()).
		Int("teachers", stores.Teachers.Len()).
		Int("parents", stores.Parents.Len()).
		Msg("Record stores loaded")

	// ─── Initialize Services ──────────────────────────────────────────
	hub := websocket.NewHub(log)
	services := service.NewServices(stores, hub)
	authService := service.NewAuthService(cfg)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Class:   handler.NewClassHandler(services.Classes),
		Student: handler.NewStudentHandler(services.Students),
		Teacher: handler.NewTeacherHandler(services.Teachers),
		Parent:  handler.NewParentHandler(services.Parents),
		Events:  handler.NewEventsHandler(hub, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	go limiter.Run(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, limiter, handlers, cfg, log)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
