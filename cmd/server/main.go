package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"creditscan/internal/config"
	"creditscan/internal/creditparser"
	"creditscan/internal/handler"
	"creditscan/internal/logger"
	"creditscan/internal/ocr"
	"creditscan/internal/repository/postgres"
	"creditscan/internal/router"
	"creditscan/internal/service"
	s3storage "creditscan/internal/storage/s3"
)

// @title CreditScan API
// @version 1.0
// @description Credit bureau report upload, parsing and export service.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	reportRepo := postgres.NewReportRepo(db)
	creditRepo := postgres.NewCreditDataRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize storage
	storage, err := s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Text extraction and parsing
	extractor, err := ocr.NewExtractor(&cfg.OCR, storage, zlog)
	if err != nil {
		return fmt.Errorf("failed to initialize text extractor: %w", err)
	}
	parser := creditparser.New(cfg.Parser.Options(), zlog)

	processingTimeout := time.Duration(cfg.Queue.ProcessingTimeoutS) * time.Second

	// Initialize services
	reportSvc := service.NewReportService(reportRepo, creditRepo, storage, extractor, parser, service.ReportServiceConfig{
		Bucket:           cfg.S3.Bucket,
		MaxFileSizeMB:    cfg.S3.MaxFileSizeMB,
		PresignExpiry:    cfg.S3.PresignExpiry,
		MaxParseAttempts: cfg.Queue.MaxRetries,
		ParseTimeout:     processingTimeout,
	}, zlog)
	statsSvc := service.NewStatsService(statsRepo)

	worker := service.NewParseQueueWorker(reportRepo, reportSvc, service.ParseQueueConfig{
		PollInterval:   time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:     cfg.Queue.MaxRetries,
		Concurrency:    cfg.Queue.Concurrency,
		InterItemDelay: time.Duration(cfg.Queue.InterItemDelayMs) * time.Millisecond,
		ParseTimeout:   processingTimeout,
		ClaimBatchSize: cfg.Queue.ClaimBatchSize,
	}, zlog)

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	// Initialize handlers
	reportH := handler.NewReportHandler(reportSvc)
	parseH := handler.NewParseHandler(reportSvc, cfg.S3.MaxFileSizeMB*1024*1024)
	statsH := handler.NewStatsHandler(statsSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(zlog, cfg.CORS.AllowedOrigins, reportH, parseH, statsH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		zlog.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("env", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			stop()
			<-workerDone
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown error", zap.Error(err))
	}
	<-workerDone
	zlog.Info("shutdown complete")

	return nil
}
