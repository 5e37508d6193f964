package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loan-insight/config"
	httpLayer "loan-insight/http"
	"loan-insight/messaging"
	"loan-insight/observability"
	"loan-insight/repository"
	"loan-insight/service"
)

type eventPublisher interface {
	service.EventPublisher
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	metrics := observability.NewMetrics()

	var (
		reports repository.AssessmentRepository
		checks  = map[string]httpLayer.Pinger{}
	)
	if cfg.RedisAddr != "" {
		redisReports := repository.NewRedisAssessmentRepository(cfg.RedisAddr, cfg.ReportTTL)
		defer redisReports.Close()
		reports = redisReports
		checks["redis"] = redisReports
	} else {
		reports = repository.NewMemoryAssessmentRepository(cfg.ReportTTL)
	}

	var publisher eventPublisher = messaging.NewLogPublisher(logger)
	if len(cfg.KafkaBrokers) > 0 {
		publisher = messaging.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	}
	defer publisher.Close()

	predictor := service.NewPredictionClient(cfg.PredictionURL, cfg.PredictionTimeout, logger)
	assessments := service.NewAssessmentService(predictor, reports, publisher, metrics, cfg.AnnualRate, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	routes := httpLayer.Routes{
		Assessment: httpLayer.NewAssessmentHandler(assessments, logger),
		Report:     httpLayer.NewReportHandler(assessments, logger),
		Health:     httpLayer.NewHealthHandler(logger, checks),
		Limiter:    rateLimiter,
		Metrics:    metrics,
		Logger:     logger,
		StaticDir:  cfg.StaticDir,
	}

	// WriteTimeout covers the prediction call, so it is left unset when no
	// prediction timeout is configured.
	server := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     routes.Mux(),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
	if cfg.PredictionTimeout > 0 {
		server.WriteTimeout = cfg.PredictionTimeout + 15*time.Second
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("loan-insight listening",
			"addr", server.Addr,
			"prediction_url", cfg.PredictionURL,
			"report_store", storeName(cfg),
			"kafka", len(cfg.KafkaBrokers) > 0,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed", "error", err)
		return
	case sig := <-quit:
		logger.Info("shutting down server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	logger.Info("server exited")
}

func storeName(cfg config.Config) string {
	if cfg.RedisAddr != "" {
		return "redis"
	}
	return "memory"
}
