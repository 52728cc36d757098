package model

import (
	"time"
)

// SentimentMention is one sentiment judgment about one symbol at one instant,
// produced by the upstream sentiment collaborator. Rows are immutable;
// re-ingestion of the same source is a no-op keyed on SourceID.
type SentimentMention struct {
	ID         uint      `gorm:"primarykey"`
	Symbol     string    `gorm:"not null;index:idx_sentiment_symbol_observed"`
	ObservedAt time.Time `gorm:"not null;index:idx_sentiment_symbol_observed"`
	Label      string    `gorm:"not null"`
	Score      float64   `gorm:"not null"`
	SourceID   string    `gorm:"not null;uniqueIndex"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (SentimentMention) TableName() string {
	return "sentiment_mentions"
}

type GetSentimentParam struct {
	Symbol string
	From   time.Time
	To     time.Time
}
