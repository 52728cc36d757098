package repository

import (
	"context"
	"sentiment-trading/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PriceRepository interface {
	SaveBulk(ctx context.Context, bars []model.PriceBar) error
	Get(ctx context.Context, param model.GetPriceParam) ([]model.PriceBar, error)
	DeleteOlderThan(ctx context.Context, date time.Time) (int64, error)
}

type priceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) PriceRepository {
	return &priceRepository{db: db}
}

// SaveBulk upserts bars on (symbol, period_start). A corrected bar from the
// market-data collaborator replaces the previous close and volume.
func (p *priceRepository) SaveBulk(ctx context.Context, bars []model.PriceBar) error {
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}, {Name: "period_start"}},
			DoUpdates: clause.AssignmentColumns([]string{"close", "volume"}),
		}).
		CreateInBatches(bars, 100).Error
}

// Get returns bars ordered by period_start ascending, which the price window
// builder depends on.
func (p *priceRepository) Get(ctx context.Context, param model.GetPriceParam) ([]model.PriceBar, error) {
	var bars []model.PriceBar

	query := p.db.WithContext(ctx).
		Where("symbol = ?", param.Symbol).
		Order("period_start ASC")

	if !param.From.IsZero() {
		query = query.Where("period_start >= ?", param.From)
	}
	if !param.To.IsZero() {
		query = query.Where("period_start < ?", param.To)
	}

	if err := query.Find(&bars).Error; err != nil {
		return nil, err
	}
	return bars, nil
}

func (p *priceRepository) DeleteOlderThan(ctx context.Context, date time.Time) (int64, error) {
	db := p.db.WithContext(ctx).Where("period_start < ?", date).Delete(&model.PriceBar{})
	if db.Error != nil {
		return 0, db.Error
	}
	return db.RowsAffected, nil
}
