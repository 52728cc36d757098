package service

import (
	"sentiment-trading/config"
	"sentiment-trading/internal/analysis"
	"sentiment-trading/internal/repository"
	"sentiment-trading/pkg/cache"
	"sentiment-trading/pkg/httpclient"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/telegram"
)

type Service struct {
	PatternService   PatternService
	IngestService    IngestService
	SchedulerService SchedulerService
	AlertService     AlertService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
	notifier *telegram.Notifier,
) (*Service, error) {
	analyzer, err := analysis.NewAnalyzer(cfg, log, repo.SentimentRepo, repo.PriceRepo, repo.PatternRepo)
	if err != nil {
		return nil, err
	}

	var webhook httpclient.HTTPClient
	if cfg.Webhook.SignalURL != "" {
		webhook = httpclient.New(cfg.Webhook.SignalURL, cfg.Webhook.BaseTimeout, cfg.Webhook.AuthToken)
	}

	alertService := NewAlertService(cfg, log, notifier, webhook)
	patternService := NewPatternService(cfg, log, analyzer, repo.PatternRepo, inmemoryCache, alertService)
	ingestService := NewIngestService(cfg, log, repo.SentimentRepo, repo.PriceRepo)
	schedulerService := NewSchedulerService(cfg, log, patternService, repo.SentimentRepo, repo.PriceRepo)

	return &Service{
		PatternService:   patternService,
		IngestService:    ingestService,
		SchedulerService: schedulerService,
		AlertService:     alertService,
	}, nil
}
