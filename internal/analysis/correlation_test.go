package analysis

import (
	"sentiment-trading/config"
	"sentiment-trading/internal/dto"
	"sentiment-trading/pkg/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAnalysisConfig() config.Analysis {
	return config.Analysis{
		WindowDays:                7,
		MinPeriods:                3,
		MinMentions:               5,
		CorrelationThreshold:      0.6,
		SignalConfidenceThreshold: 0.65,
		TargetPeriods:             7,
		TimeZone:                  "UTC",
		MaxConcurrency:            2,
	}
}

// alignedSeries builds complete aligned periods from parallel slices.
func alignedSeries(sentiments, returns []float64) []dto.AlignedPeriod {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	periods := make([]dto.AlignedPeriod, len(sentiments))
	for i := range sentiments {
		periods[i] = dto.AlignedPeriod{
			Day:           base.AddDate(0, 0, i),
			SentimentMean: utils.ToPointer(sentiments[i]),
			PriceReturn:   utils.ToPointer(returns[i]),
		}
	}
	return periods
}

func TestAlignPeriods(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	sentiments := []dto.DailySentiment{
		{Day: base, MeanScore: utils.ToPointer(0.5), TotalCount: 2},
		{Day: base.AddDate(0, 0, 1)}, // no observations
		{Day: base.AddDate(0, 0, 2), MeanScore: utils.ToPointer(-0.2), TotalCount: 1},
	}
	prices := []dto.DailyPrice{
		{Day: base, Close: 100},
		{Day: base.AddDate(0, 0, 2), Close: 105, Return: utils.ToPointer(0.05)},
	}

	aligned := AlignPeriods(sentiments, prices)
	require.Len(t, aligned, 3)

	// day 0: sentiment present, price present but first-day return is nil
	assert.NotNil(t, aligned[0].SentimentMean)
	assert.Nil(t, aligned[0].PriceReturn)
	assert.False(t, aligned[0].Complete())

	// day 1: no sentiment, no trading
	assert.False(t, aligned[1].Complete())

	// day 2: both present
	assert.True(t, aligned[2].Complete())
	assert.InDelta(t, 0.05, *aligned[2].PriceReturn, 1e-9)
}

func TestCorrelate(t *testing.T) {
	engine := NewEngine(testAnalysisConfig())

	t.Run("positively correlated positive sentiment is bullish", func(t *testing.T) {
		sentiments := []float64{0.1, 0.3, 0.5, 0.7, 0.9, 0.6, 0.8}
		returns := []float64{0.001, 0.003, 0.005, 0.007, 0.009, 0.006, 0.008}

		outcome := engine.Correlate(alignedSeries(sentiments, returns), 20)

		assert.Equal(t, dto.PatternBullish, outcome.PatternType)
		assert.InDelta(t, 1.0, outcome.CorrelationScore, 1e-9)
		assert.Equal(t, 7, outcome.AlignedCount)
		assert.InDelta(t, 1.0, outcome.Confidence, 1e-9)
	})

	t.Run("correlated negative sentiment is bearish", func(t *testing.T) {
		sentiments := []float64{-0.9, -0.7, -0.5, -0.3, -0.6, -0.8, -0.4}
		returns := []float64{-0.009, -0.007, -0.005, -0.003, -0.006, -0.008, -0.004}

		outcome := engine.Correlate(alignedSeries(sentiments, returns), 20)

		assert.Equal(t, dto.PatternBearish, outcome.PatternType)
		assert.InDelta(t, 1.0, outcome.CorrelationScore, 1e-9)
		assert.Negative(t, outcome.MeanSentiment)
	})

	t.Run("uncorrelated series is neutral", func(t *testing.T) {
		sentiments := []float64{0.8, 0.8, 0.8, 0.8, 0.8, 0.8, 0.8}
		returns := []float64{0.01, -0.02, 0.005, -0.01, 0.015, -0.005, 0.002}

		outcome := engine.Correlate(alignedSeries(sentiments, returns), 20)

		assert.Equal(t, dto.PatternNeutral, outcome.PatternType)
		assert.Less(t, outcome.CorrelationScore, 0.6)
	})

	t.Run("too few aligned periods dominates raw correlation", func(t *testing.T) {
		sentiments := []float64{0.5, 0.9}
		returns := []float64{0.005, 0.009}

		outcome := engine.Correlate(alignedSeries(sentiments, returns), 20)

		assert.Equal(t, dto.PatternInsufficientData, outcome.PatternType)
		assert.Equal(t, 0.0, outcome.CorrelationScore)
		assert.Equal(t, 0.0, outcome.Confidence)
	})

	t.Run("too few mentions dominates raw correlation", func(t *testing.T) {
		sentiments := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
		returns := []float64{0.001, 0.003, 0.005, 0.007, 0.009}

		outcome := engine.Correlate(alignedSeries(sentiments, returns), 4)

		assert.Equal(t, dto.PatternInsufficientData, outcome.PatternType)
		assert.Equal(t, 0.0, outcome.Confidence)
	})

	t.Run("threshold boundary is inclusive", func(t *testing.T) {
		cfg := testAnalysisConfig()
		cfg.CorrelationThreshold = 1.0
		strict := NewEngine(cfg)

		sentiments := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
		returns := []float64{0.001, 0.002, 0.003, 0.004, 0.005}

		outcome := strict.Correlate(alignedSeries(sentiments, returns), 20)

		assert.InDelta(t, 1.0, outcome.CorrelationScore, 1e-9)
		assert.Equal(t, dto.PatternBullish, outcome.PatternType)
	})

	t.Run("confidence discounts thin windows and grows with evidence", func(t *testing.T) {
		sentiments := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7}
		returns := []float64{0.001, 0.002, 0.003, 0.004, 0.005, 0.006, 0.007}

		var prev float64
		for n := 3; n <= 7; n++ {
			outcome := engine.Correlate(alignedSeries(sentiments[:n], returns[:n]), 20)
			assert.GreaterOrEqual(t, outcome.Confidence, prev, "confidence must not decrease as evidence grows (n=%d)", n)
			assert.InDelta(t, float64(n)/7.0, outcome.Confidence, 1e-9)
			prev = outcome.Confidence
		}
	})

	t.Run("incomplete periods are excluded from the correlation", func(t *testing.T) {
		periods := alignedSeries(
			[]float64{0.1, 0.2, 0.3, 0.4},
			[]float64{0.001, 0.002, 0.003, 0.004},
		)
		periods = append(periods,
			dto.AlignedPeriod{Day: time.Now(), SentimentMean: utils.ToPointer(0.9)},
			dto.AlignedPeriod{Day: time.Now(), PriceReturn: utils.ToPointer(0.5)},
		)

		outcome := engine.Correlate(periods, 20)
		assert.Equal(t, 4, outcome.AlignedCount)
	})

	t.Run("score and confidence stay inside their ranges", func(t *testing.T) {
		cases := [][2][]float64{
			{{0.5, -0.5, 0.5, -0.5, 0.5}, {0.01, -0.01, 0.01, -0.01, 0.01}},
			{{0.5, 0.5, 0.5, 0.5, 0.5}, {0.01, 0.02, 0.03, 0.04, 0.05}}, // zero variance side
			{{-0.9, 0.9, -0.9, 0.9, -0.9}, {0.01, -0.02, 0.03, -0.04, 0.05}},
		}
		for _, c := range cases {
			outcome := engine.Correlate(alignedSeries(c[0], c[1]), 20)
			assert.GreaterOrEqual(t, outcome.CorrelationScore, -1.0)
			assert.LessOrEqual(t, outcome.CorrelationScore, 1.0)
			assert.GreaterOrEqual(t, outcome.Confidence, 0.0)
			assert.LessOrEqual(t, outcome.Confidence, 1.0)
		}
	})
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		ys   []float64
		want float64
	}{
		{name: "perfect positive", xs: []float64{1, 2, 3}, ys: []float64{10, 20, 30}, want: 1},
		{name: "perfect negative", xs: []float64{1, 2, 3}, ys: []float64{30, 20, 10}, want: -1},
		{name: "zero variance", xs: []float64{2, 2, 2}, ys: []float64{1, 2, 3}, want: 0},
		{name: "empty", xs: nil, ys: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, pearson(tt.xs, tt.ys), 1e-9)
		})
	}
}
