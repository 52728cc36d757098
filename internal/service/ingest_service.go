package service

import (
	"context"
	"fmt"
	"sentiment-trading/config"
	"sentiment-trading/internal/analysis"
	"sentiment-trading/internal/dto"
	"sentiment-trading/internal/model"
	"sentiment-trading/internal/repository"
	"sentiment-trading/pkg/logger"
)

// IngestService is the adapter boundary for the upstream collaborators: it
// translates their flat observation records into stored rows. Malformed
// records are rejected with a validation error, never silently dropped.
type IngestService interface {
	IngestSentiments(ctx context.Context, req dto.IngestSentimentRequest) (int, error)
	IngestPrices(ctx context.Context, req dto.IngestPriceRequest) (int, error)
}

type ingestService struct {
	cfg           *config.Config
	log           *logger.Logger
	sentimentRepo repository.SentimentRepository
	priceRepo     repository.PriceRepository
}

func NewIngestService(
	cfg *config.Config,
	log *logger.Logger,
	sentimentRepo repository.SentimentRepository,
	priceRepo repository.PriceRepository,
) IngestService {
	return &ingestService{
		cfg:           cfg,
		log:           log,
		sentimentRepo: sentimentRepo,
		priceRepo:     priceRepo,
	}
}

func (s *ingestService) IngestSentiments(ctx context.Context, req dto.IngestSentimentRequest) (int, error) {
	mentions := make([]model.SentimentMention, 0, len(req.Mentions))
	for _, m := range req.Mentions {
		if err := analysis.ValidateSymbol(m.Symbol); err != nil {
			return 0, err
		}
		mentions = append(mentions, model.SentimentMention{
			Symbol:     m.Symbol,
			ObservedAt: m.ObservedAt,
			Label:      m.Label,
			Score:      m.Score,
			SourceID:   m.SourceID,
		})
	}

	if err := s.sentimentRepo.SaveBulk(ctx, mentions); err != nil {
		return 0, fmt.Errorf("failed to save sentiment mentions: %w", err)
	}

	s.log.InfoContext(ctx, "Ingested sentiment mentions", logger.IntField("count", len(mentions)))
	return len(mentions), nil
}

func (s *ingestService) IngestPrices(ctx context.Context, req dto.IngestPriceRequest) (int, error) {
	bars := make([]model.PriceBar, 0, len(req.Bars))
	for _, b := range req.Bars {
		if err := analysis.ValidateSymbol(b.Symbol); err != nil {
			return 0, err
		}
		bars = append(bars, model.PriceBar{
			Symbol:      b.Symbol,
			PeriodStart: b.PeriodStart,
			Close:       b.Close,
			Volume:      b.Volume,
		})
	}

	if err := s.priceRepo.SaveBulk(ctx, bars); err != nil {
		return 0, fmt.Errorf("failed to save price bars: %w", err)
	}

	s.log.InfoContext(ctx, "Ingested price bars", logger.IntField("count", len(bars)))
	return len(bars), nil
}
