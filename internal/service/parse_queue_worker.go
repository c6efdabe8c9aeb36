package service

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"creditscan/internal/logger"
	"creditscan/internal/port"
)

// ParseQueueConfig holds settings for the parse queue worker.
type ParseQueueConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
	// InterItemDelay is slept after each parse while its slot is still held,
	// spacing out calls to the text extraction provider.
	InterItemDelay time.Duration
	ParseTimeout   time.Duration
	// ClaimBatchSize caps the reports claimed per poll; zero means no cap beyond free slots.
	ClaimBatchSize int
}

// ParseQueueWorker polls for queued reports and dispatches them for parsing.
type ParseQueueWorker struct {
	reportRepo    port.ReportRepository
	reportService ReportService
	cfg           ParseQueueConfig
	log           *zap.Logger
	inFlight      atomic.Int32
}

// NewParseQueueWorker creates a new ParseQueueWorker.
func NewParseQueueWorker(reportRepo port.ReportRepository, reportService ReportService, cfg ParseQueueConfig, log *zap.Logger) *ParseQueueWorker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.ParseTimeout <= 0 {
		cfg.ParseTimeout = 5 * time.Minute
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}
	return &ParseQueueWorker{
		reportRepo:    reportRepo,
		reportService: reportService,
		cfg:           cfg,
		log:           logger.OrNop(log),
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight parses have finished.
func (w *ParseQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	var group errgroup.Group
	group.SetLimit(w.cfg.Concurrency)

	w.log.Info("parseQueueWorker: started",
		zap.Duration("poll", w.cfg.PollInterval),
		zap.Int("concurrency", w.cfg.Concurrency),
		zap.Int("max_retries", w.cfg.MaxRetries),
		zap.Duration("inter_item_delay", w.cfg.InterItemDelay))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("parseQueueWorker: shutting down, waiting for in-flight parses")
			_ = group.Wait()
			w.log.Info("parseQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - int(w.inFlight.Load())
			if available <= 0 {
				continue
			}
			if w.cfg.ClaimBatchSize > 0 && available > w.cfg.ClaimBatchSize {
				available = w.cfg.ClaimBatchSize
			}

			reports, err := w.reportRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				w.log.Error("parseQueueWorker: ClaimQueued error", zap.Error(err))
				continue
			}

			for i := range reports {
				report := reports[i]
				report.ParseAttempts++

				w.inFlight.Add(1)
				group.Go(func() error {
					defer w.inFlight.Add(-1)

					// Independent of the poll context so in-flight parses finish during shutdown.
					parseCtx, cancel := context.WithTimeout(context.Background(), w.cfg.ParseTimeout)
					defer cancel()

					w.log.Info("parseQueueWorker: dispatching report",
						zap.String("report_id", report.ID.String()),
						zap.Int("attempt", report.ParseAttempts))
					w.reportService.ParseReport(parseCtx, &report, w.cfg.MaxRetries)

					if w.cfg.InterItemDelay > 0 {
						time.Sleep(w.cfg.InterItemDelay)
					}
					return nil
				})
			}
		}
	}
}
