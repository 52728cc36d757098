package repository

import (
	"context"
	"errors"
	"sentiment-trading/internal/model"
	"sentiment-trading/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PatternRepository interface {
	Upsert(ctx context.Context, pattern *model.PatternResult) error
	GetLatest(ctx context.Context, symbol string) (*model.PatternResult, error)
	ListRecent(ctx context.Context, limit int, opts ...utils.DBOption) ([]model.PatternResult, error)
}

type patternRepository struct {
	db *gorm.DB
}

func NewPatternRepository(db *gorm.DB) PatternRepository {
	return &patternRepository{db: db}
}

// Upsert writes one pattern result keyed on (symbol, analysis_date). A rerun
// for the same symbol and day replaces the stored row in a single atomic
// statement, so concurrent reruns cannot race between check and write.
func (p *patternRepository) Upsert(ctx context.Context, pattern *model.PatternResult) error {
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "symbol"}, {Name: "analysis_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"analyzed_at",
				"window_days",
				"correlation_score",
				"pattern_type",
				"confidence",
				"mention_count",
				"aligned_periods",
				"signal_direction",
				"expected_return",
				"signal_confidence",
				"daily_breakdown",
				"updated_at",
			}),
		}).
		Create(pattern).Error
}

// GetLatest returns the most recent result for a symbol, or nil when the
// symbol has never been analyzed.
func (p *patternRepository) GetLatest(ctx context.Context, symbol string) (*model.PatternResult, error) {
	var pattern model.PatternResult
	err := p.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("analysis_date DESC").
		First(&pattern).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pattern, nil
}

func (p *patternRepository) ListRecent(ctx context.Context, limit int, opts ...utils.DBOption) ([]model.PatternResult, error) {
	var patterns []model.PatternResult
	err := utils.ApplyOptions(p.db.WithContext(ctx), opts...).
		Order("analyzed_at DESC").
		Limit(limit).
		Find(&patterns).Error
	if err != nil {
		return nil, err
	}
	return patterns, nil
}
