package repository

import (
	"sentiment-trading/config"
	"sentiment-trading/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	SentimentRepo SentimentRepository
	PriceRepo     PriceRepository
	PatternRepo   PatternRepository
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	return &Repository{
		SentimentRepo: NewSentimentRepository(db),
		PriceRepo:     NewPriceRepository(db),
		PatternRepo:   NewPatternRepository(db),
	}, nil
}
