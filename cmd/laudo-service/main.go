package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/validaeja/validaeja-backend/internal/analysis/events"
	"github.com/validaeja/validaeja-backend/internal/analysis/handler"
	"github.com/validaeja/validaeja-backend/internal/analysis/registry"
	"github.com/validaeja/validaeja-backend/internal/analysis/repository"
	"github.com/validaeja/validaeja-backend/internal/analysis/service"
	"github.com/validaeja/validaeja-backend/internal/analysis/session"
	"github.com/validaeja/validaeja-backend/internal/ocr"
	"github.com/validaeja/validaeja-backend/pkg/config"
	"github.com/validaeja/validaeja-backend/pkg/database"
	"github.com/validaeja/validaeja-backend/pkg/httputil"
	"github.com/validaeja/validaeja-backend/pkg/i18n"
	"github.com/validaeja/validaeja-backend/pkg/logger"
	"github.com/validaeja/validaeja-backend/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation("laudo-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("laudo-service", cfg.Server.Environment)
	log.Info().Msg("starting Laudo Service")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Initialize event publisher
	publisher, err := events.NewAnalysisEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Initialize repository
	auditRepo := repository.NewAuditRepository(db)

	// Initialize session store and OCR client
	sessions := session.NewStore(cfg.Session.TTL)
	ocrClient := ocr.NewClient(&cfg.OCR)

	// Initialize service
	analysisService := service.New(
		ocrClient,
		sessions,
		registry.NewSimulatedChecker(),
		auditRepo,
		publisher,
		cfg.OCR.Language,
		log,
	)

	// Initialize handler
	analysisHandler := handler.New(analysisService, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(i18n.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "laudo-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// API routes (JWT required)
	r.Route("/api/v1/laudos", func(r chi.Router) {
		r.Use(httputil.Auth(&cfg.JWT))
		analysisHandler.RegisterRoutes(r)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
