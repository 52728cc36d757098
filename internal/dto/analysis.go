package dto

import "time"

// DailySentiment is one calendar day's sentiment summary. Days with no
// observations are represented explicitly with TotalCount 0 and a nil
// MeanScore so the correlation step can tell "no signal" from "neutral".
type DailySentiment struct {
	Day          time.Time `json:"day"`
	MeanScore    *float64  `json:"mean_score"`
	BullishCount int       `json:"bullish_count"`
	BearishCount int       `json:"bearish_count"`
	NeutralCount int       `json:"neutral_count"`
	TotalCount   int       `json:"total_count"`
}

// DailyPrice is one trading day's close and day-over-day return. The first
// day in a window has no prior close, so its Return is nil. Non-trading days
// are simply absent from the series.
type DailyPrice struct {
	Day    time.Time `json:"day"`
	Close  float64   `json:"close"`
	Return *float64  `json:"return"`
}

// AlignedPeriod pairs one day's mean sentiment with that day's price return.
// Built fresh on every run, never persisted as-is (a JSON snapshot of the
// aligned series is stored on the pattern row for reporting).
type AlignedPeriod struct {
	Day           time.Time `json:"day"`
	SentimentMean *float64  `json:"sentiment_mean"`
	PriceReturn   *float64  `json:"price_return"`
}

// Complete reports whether both sides of the pair are present, making the
// period usable for correlation.
func (p AlignedPeriod) Complete() bool {
	return p.SentimentMean != nil && p.PriceReturn != nil
}

// CorrelationOutcome is the classified relationship between a symbol's
// sentiment and price movement over one window.
type CorrelationOutcome struct {
	CorrelationScore float64
	PatternType      PatternType
	Confidence       float64
	AlignedCount     int
	MeanSentiment    float64
	MentionCount     int
}

// TradingSignal is the actionable recommendation attached to a pattern once
// the evidence and confidence gates pass.
type TradingSignal struct {
	Direction      SignalDirection `json:"direction"`
	ExpectedReturn float64         `json:"expected_return"`
	Confidence     float64         `json:"confidence"`
}
