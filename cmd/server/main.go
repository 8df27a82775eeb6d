package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/resume-api/config"
	"github.com/ErlanBelekov/resume-api/internal/auth"
	"github.com/ErlanBelekov/resume-api/internal/health"
	"github.com/ErlanBelekov/resume-api/internal/infrastructure/store"
	ctxlog "github.com/ErlanBelekov/resume-api/internal/log"
	"github.com/ErlanBelekov/resume-api/internal/metrics"
	httptransport "github.com/ErlanBelekov/resume-api/internal/transport/http"
	"github.com/ErlanBelekov/resume-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/resume-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	db, err := store.Open(ctx, cfg)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer db.Close()
	logger.Info("storage ready", "driver", db.Driver)

	// Auth
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	authUsecase := usecase.NewAuthUsecase(db.Users, hasher, tokens)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// Resumes
	resumeUsecase := usecase.NewResumeUsecase(db.Resumes)
	resumeHandler := handler.NewResumeHandler(resumeUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(db.DB, db.Driver, logger, prometheus.DefaultRegisterer)

	router := httptransport.NewRouter(logger, httptransport.RouterOptions{
		AllowedOrigins:      cfg.CORSAllowedOrigins,
		HSTS:                cfg.Env != "local",
		ExperimentalImprove: cfg.ExperimentalImprove,
	}, authUsecase, authHandler, resumeHandler)

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "experimental_improve", cfg.ExperimentalImprove)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
