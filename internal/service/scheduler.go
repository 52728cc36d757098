package service

import (
	"context"
	"fmt"
	"sentiment-trading/config"
	"sentiment-trading/internal/repository"
	"sentiment-trading/pkg/logger"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService drives the recurring work: the daily batch analysis over
// every symbol present in the sentiment store, and retention cleanup of raw
// observations. Pattern history is never cleaned up here.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
	RunBatch(ctx context.Context) ([]string, error)
}

type schedulerService struct {
	cfg            *config.Config
	log            *logger.Logger
	cron           *cron.Cron
	patternService PatternService
	sentimentRepo  repository.SentimentRepository
	priceRepo      repository.PriceRepository
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	patternService PatternService,
	sentimentRepo repository.SentimentRepository,
	priceRepo repository.PriceRepository,
) SchedulerService {
	return &schedulerService{
		cfg:            cfg,
		log:            log,
		cron:           cron.New(),
		patternService: patternService,
		sentimentRepo:  sentimentRepo,
		priceRepo:      priceRepo,
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cfg.Scheduler.AnalysisCron, func() {
		runCtx, cancel := context.WithTimeout(ctx, s.cfg.Scheduler.TimeoutDuration)
		defer cancel()

		if _, err := s.RunBatch(runCtx); err != nil {
			s.log.ErrorContextWithAlert(runCtx, "Scheduled batch analysis failed", logger.ErrorField(err))
		}
	}); err != nil {
		return fmt.Errorf("failed to register analysis cron %q: %w", s.cfg.Scheduler.AnalysisCron, err)
	}

	if _, err := s.cron.AddFunc(s.cfg.Scheduler.CleanupCron, func() {
		runCtx, cancel := context.WithTimeout(ctx, s.cfg.Scheduler.TimeoutDuration)
		defer cancel()
		s.runCleanup(runCtx)
	}); err != nil {
		return fmt.Errorf("failed to register cleanup cron %q: %w", s.cfg.Scheduler.CleanupCron, err)
	}

	s.cron.Start()
	s.log.Info("Scheduler started",
		logger.StringField("analysis_cron", s.cfg.Scheduler.AnalysisCron),
		logger.StringField("cleanup_cron", s.cfg.Scheduler.CleanupCron),
	)
	return nil
}

func (s *schedulerService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Scheduler stopped")
}

// RunBatch analyzes every symbol currently present in the sentiment store.
// Returns the symbols that failed; a non-empty slice is not an error.
func (s *schedulerService) RunBatch(ctx context.Context) ([]string, error) {
	symbols, err := s.sentimentRepo.DistinctSymbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list symbols for batch: %w", err)
	}
	if len(symbols) == 0 {
		s.log.InfoContext(ctx, "No symbols to analyze")
		return nil, nil
	}

	results := s.patternService.AnalyzeMany(ctx, symbols, time.Now(), 0)

	var failed []string
	for _, r := range results {
		if r.Error != "" {
			failed = append(failed, r.Symbol)
		}
	}

	s.log.InfoContext(ctx, "Scheduled batch analysis finished",
		logger.IntField("total", len(symbols)),
		logger.IntField("failed", len(failed)),
	)
	return failed, nil
}

func (s *schedulerService) runCleanup(ctx context.Context) {
	if s.cfg.Scheduler.RetentionDays <= 0 {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -s.cfg.Scheduler.RetentionDays)

	deletedMentions, err := s.sentimentRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to clean up sentiment mentions", logger.ErrorField(err))
	}
	deletedBars, err := s.priceRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to clean up price bars", logger.ErrorField(err))
	}

	s.log.InfoContext(ctx, "Retention cleanup finished",
		logger.Field("deleted_mentions", deletedMentions),
		logger.Field("deleted_bars", deletedBars),
		logger.StringField("cutoff", cutoff.Format("2006-01-02")),
	)
}
