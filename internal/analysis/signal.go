package analysis

import (
	"sentiment-trading/internal/dto"
)

// GenerateSignal decides whether the classified pattern is strong enough to
// publish. A nil result means "no recommendation", which callers must treat
// as distinct from a recommendation to hold.
func (e *Engine) GenerateSignal(outcome dto.CorrelationOutcome, aligned []dto.AlignedPeriod) *dto.TradingSignal {
	directional := outcome.PatternType == dto.PatternBullish || outcome.PatternType == dto.PatternBearish
	if !directional ||
		outcome.Confidence < e.cfg.SignalConfidenceThreshold ||
		outcome.MentionCount < e.cfg.MinMentions {
		return nil
	}

	direction := dto.SignalBuy
	if outcome.PatternType == dto.PatternBearish {
		direction = dto.SignalSell
	}

	// Only on-thesis periods contribute to the return estimate: days whose
	// sentiment sign matches the pattern direction. Off-thesis days passed the
	// overall correlation test but would dilute the estimate.
	var (
		sum   float64
		count int
	)
	for i := range aligned {
		p := &aligned[i]
		if !p.Complete() {
			continue
		}
		onThesis := (direction == dto.SignalBuy && *p.SentimentMean > 0) ||
			(direction == dto.SignalSell && *p.SentimentMean < 0)
		if onThesis {
			sum += *p.PriceReturn
			count++
		}
	}

	expectedReturn := 0.0
	if count > 0 {
		expectedReturn = sum / float64(count)
	}

	return &dto.TradingSignal{
		Direction:      direction,
		ExpectedReturn: expectedReturn,
		Confidence:     outcome.Confidence,
	}
}
