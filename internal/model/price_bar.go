package model

import (
	"time"
)

// PriceBar is one OHLCV bar for one symbol and one period, produced by the
// upstream market-data collaborator. Immutable input.
type PriceBar struct {
	ID          uint      `gorm:"primarykey"`
	Symbol      string    `gorm:"not null;uniqueIndex:idx_price_symbol_period"`
	PeriodStart time.Time `gorm:"not null;uniqueIndex:idx_price_symbol_period"`
	Close       float64   `gorm:"not null"`
	Volume      int64     `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (PriceBar) TableName() string {
	return "price_bars"
}

type GetPriceParam struct {
	Symbol string
	From   time.Time
	To     time.Time
}
