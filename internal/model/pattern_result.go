package model

import (
	"time"

	"gorm.io/datatypes"
)

// PatternResult is the durable output of one analysis run for one symbol.
// Exactly one non-superseded row exists per (symbol, analysis_date): a rerun
// on the same day replaces the prior row via an upsert on that key.
type PatternResult struct {
	ID               uint      `gorm:"primarykey"`
	Symbol           string    `gorm:"not null;uniqueIndex:idx_pattern_symbol_day"`
	AnalysisDate     time.Time `gorm:"type:date;not null;uniqueIndex:idx_pattern_symbol_day"`
	AnalyzedAt       time.Time `gorm:"not null"`
	WindowDays       int       `gorm:"not null"`
	CorrelationScore float64   `gorm:"not null"`
	PatternType      string    `gorm:"not null"`
	Confidence       float64   `gorm:"not null"`
	MentionCount     int       `gorm:"not null"`
	AlignedPeriods   int       `gorm:"not null"`

	// Signal fields are nil when the confidence/evidence gates did not pass.
	// Absence means "no recommendation", which is distinct from "hold".
	SignalDirection  *string
	ExpectedReturn   *float64
	SignalConfidence *float64

	DailyBreakdown datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (PatternResult) TableName() string {
	return "pattern_results"
}

// HasSignal reports whether this result carries an actionable recommendation.
func (p *PatternResult) HasSignal() bool {
	return p.SignalDirection != nil
}
