package analysis

import (
	"fmt"
	"sentiment-trading/internal/dto"
	"sentiment-trading/internal/model"
	"sentiment-trading/pkg/utils"
	"time"
)

// AggregateSentiment collapses raw mentions into a per-day series covering
// every calendar day of the lookback window ending on the day of asOf. Days
// with zero observations stay in the series with TotalCount 0 and a nil mean,
// so downstream steps can tell "no signal" from "neutral signal".
func AggregateSentiment(mentions []model.SentimentMention, asOf time.Time, windowDays int, loc *time.Location) ([]dto.DailySentiment, error) {
	type bucket struct {
		sum     float64
		bullish int
		bearish int
		neutral int
		total   int
	}

	buckets := make(map[string]*bucket)

	for i := range mentions {
		m := &mentions[i]
		if err := ValidateSymbol(m.Symbol); err != nil {
			return nil, err
		}
		if m.Score < -1 || m.Score > 1 {
			return nil, &ValidationError{Field: "score", Reason: fmt.Sprintf("%.4f out of range [-1, 1] (source %s)", m.Score, m.SourceID)}
		}
		if !dto.SentimentLabel(m.Label).Valid() {
			return nil, &ValidationError{Field: "label", Reason: fmt.Sprintf("unknown label %q (source %s)", m.Label, m.SourceID)}
		}

		key := utils.DayKey(m.ObservedAt, loc)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.sum += m.Score
		b.total++
		switch dto.SentimentLabel(m.Label) {
		case dto.SentimentBullish:
			b.bullish++
		case dto.SentimentBearish:
			b.bearish++
		case dto.SentimentNeutral:
			b.neutral++
		}
	}

	start, end := utils.WindowBounds(asOf, windowDays, loc)

	series := make([]dto.DailySentiment, 0, windowDays)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		entry := dto.DailySentiment{Day: day}
		if b, ok := buckets[utils.DayKey(day, loc)]; ok && b.total > 0 {
			entry.MeanScore = utils.ToPointer(b.sum / float64(b.total))
			entry.BullishCount = b.bullish
			entry.BearishCount = b.bearish
			entry.NeutralCount = b.neutral
			entry.TotalCount = b.total
		}
		series = append(series, entry)
	}

	return series, nil
}
