package analysis

import (
	"math"
	"sentiment-trading/config"
	"sentiment-trading/internal/dto"
)

// Engine classifies the relationship between a symbol's sentiment and price
// movement over one window. All thresholds are injected; the engine carries
// no ambient state and is safe to share across goroutines.
type Engine struct {
	cfg config.Analysis
}

func NewEngine(cfg config.Analysis) *Engine {
	return &Engine{cfg: cfg}
}

// AlignPeriods joins the two day series on calendar day. The sentiment series
// spans every day of the window, so it is the spine; price returns attach to
// the days the market traded.
func AlignPeriods(sentiments []dto.DailySentiment, prices []dto.DailyPrice) []dto.AlignedPeriod {
	returnsByDay := make(map[string]*float64, len(prices))
	for i := range prices {
		returnsByDay[prices[i].Day.Format("2006-01-02")] = prices[i].Return
	}

	aligned := make([]dto.AlignedPeriod, 0, len(sentiments))
	for i := range sentiments {
		s := &sentiments[i]
		period := dto.AlignedPeriod{Day: s.Day, SentimentMean: s.MeanScore}
		if r, ok := returnsByDay[s.Day.Format("2006-01-02")]; ok {
			period.PriceReturn = r
		}
		aligned = append(aligned, period)
	}
	return aligned
}

// Correlate computes the correlation score over the complete aligned periods
// and classifies the pattern. Data sparsity is a reportable outcome, never an
// error: below the evidence floor the result is INSUFFICIENT_DATA with zero
// score and zero confidence.
func (e *Engine) Correlate(aligned []dto.AlignedPeriod, mentionCount int) dto.CorrelationOutcome {
	var (
		sentimentSeries []float64
		returnSeries    []float64
		sentimentSum    float64
		sentimentDays   int
	)

	for i := range aligned {
		p := &aligned[i]
		if p.SentimentMean != nil {
			sentimentSum += *p.SentimentMean
			sentimentDays++
		}
		if p.Complete() {
			sentimentSeries = append(sentimentSeries, *p.SentimentMean)
			returnSeries = append(returnSeries, *p.PriceReturn)
		}
	}

	outcome := dto.CorrelationOutcome{
		AlignedCount: len(sentimentSeries),
		MentionCount: mentionCount,
		PatternType:  dto.PatternInsufficientData,
	}
	if sentimentDays > 0 {
		outcome.MeanSentiment = sentimentSum / float64(sentimentDays)
	}

	n := len(sentimentSeries)
	if n < e.cfg.MinPeriods || mentionCount < e.cfg.MinMentions {
		return outcome
	}

	// Clamped against floating-point overshoot.
	outcome.CorrelationScore = clamp(pearson(sentimentSeries, returnSeries), -1, 1)

	// The correlation alone does not tell direction; the sign of the window's
	// sentiment does. The threshold boundary is inclusive.
	switch {
	case outcome.CorrelationScore >= e.cfg.CorrelationThreshold && outcome.MeanSentiment > 0:
		outcome.PatternType = dto.PatternBullish
	case outcome.CorrelationScore >= e.cfg.CorrelationThreshold && outcome.MeanSentiment < 0:
		outcome.PatternType = dto.PatternBearish
	default:
		outcome.PatternType = dto.PatternNeutral
	}

	// A perfectly correlated but thinly observed window must not report full
	// confidence, so correlation strength is discounted by the evidence factor.
	evidenceFactor := math.Min(1, float64(n)/float64(e.cfg.TargetPeriods))
	outcome.Confidence = clamp(math.Abs(outcome.CorrelationScore)*evidenceFactor, 0, 1)

	return outcome
}

// pearson computes the Pearson correlation coefficient over two equal-length
// series. Degenerate series with zero variance on either side yield 0.
func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	if n == 0 {
		return 0
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
