package repository

import (
	"context"
	"sentiment-trading/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SentimentRepository interface {
	SaveBulk(ctx context.Context, mentions []model.SentimentMention) error
	Get(ctx context.Context, param model.GetSentimentParam) ([]model.SentimentMention, error)
	DistinctSymbols(ctx context.Context) ([]string, error)
	DeleteOlderThan(ctx context.Context, date time.Time) (int64, error)
}

type sentimentRepository struct {
	db *gorm.DB
}

func NewSentimentRepository(db *gorm.DB) SentimentRepository {
	return &sentimentRepository{db: db}
}

// SaveBulk inserts mentions, skipping rows whose source_id is already stored
// so re-ingestion of the same upstream post or comment is idempotent.
func (s *sentimentRepository) SaveBulk(ctx context.Context, mentions []model.SentimentMention) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source_id"}},
			DoNothing: true,
		}).
		CreateInBatches(mentions, 100).Error
}

func (s *sentimentRepository) Get(ctx context.Context, param model.GetSentimentParam) ([]model.SentimentMention, error) {
	var mentions []model.SentimentMention

	query := s.db.WithContext(ctx).
		Where("symbol = ?", param.Symbol).
		Order("observed_at ASC")

	if !param.From.IsZero() {
		query = query.Where("observed_at >= ?", param.From)
	}
	if !param.To.IsZero() {
		query = query.Where("observed_at < ?", param.To)
	}

	if err := query.Find(&mentions).Error; err != nil {
		return nil, err
	}
	return mentions, nil
}

func (s *sentimentRepository) DistinctSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	err := s.db.WithContext(ctx).
		Model(&model.SentimentMention{}).
		Distinct("symbol").
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}

func (s *sentimentRepository) DeleteOlderThan(ctx context.Context, date time.Time) (int64, error) {
	db := s.db.WithContext(ctx).Where("observed_at < ?", date).Delete(&model.SentimentMention{})
	if db.Error != nil {
		return 0, db.Error
	}
	return db.RowsAffected, nil
}
