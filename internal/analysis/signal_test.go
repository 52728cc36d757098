package analysis

import (
	"sentiment-trading/internal/dto"
	"sentiment-trading/pkg/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSignal(t *testing.T) {
	engine := NewEngine(testAnalysisConfig())

	bullish := dto.CorrelationOutcome{
		CorrelationScore: 0.9,
		PatternType:      dto.PatternBullish,
		Confidence:       0.8,
		AlignedCount:     7,
		MeanSentiment:    0.5,
		MentionCount:     20,
	}

	t.Run("bullish pattern above gates emits a buy", func(t *testing.T) {
		aligned := alignedSeries(
			[]float64{0.5, 0.6, -0.2, 0.7},
			[]float64{0.01, 0.02, -0.05, 0.03},
		)

		signal := engine.GenerateSignal(bullish, aligned)
		require.NotNil(t, signal)
		assert.Equal(t, dto.SignalBuy, signal.Direction)
		assert.Equal(t, 0.8, signal.Confidence)
		// Only the positive-sentiment days contribute: (0.01+0.02+0.03)/3.
		assert.InDelta(t, 0.02, signal.ExpectedReturn, 1e-9)
	})

	t.Run("bearish pattern emits a sell with on-thesis returns", func(t *testing.T) {
		bearish := bullish
		bearish.PatternType = dto.PatternBearish
		bearish.MeanSentiment = -0.5

		aligned := alignedSeries(
			[]float64{-0.5, -0.6, 0.2, -0.7},
			[]float64{-0.01, -0.02, 0.05, -0.03},
		)

		signal := engine.GenerateSignal(bearish, aligned)
		require.NotNil(t, signal)
		assert.Equal(t, dto.SignalSell, signal.Direction)
		assert.InDelta(t, -0.02, signal.ExpectedReturn, 1e-9)
	})

	t.Run("neutral pattern never emits", func(t *testing.T) {
		neutral := bullish
		neutral.PatternType = dto.PatternNeutral

		assert.Nil(t, engine.GenerateSignal(neutral, nil))
	})

	t.Run("insufficient data never emits", func(t *testing.T) {
		insufficient := dto.CorrelationOutcome{PatternType: dto.PatternInsufficientData}
		assert.Nil(t, engine.GenerateSignal(insufficient, nil))
	})

	t.Run("low confidence is gated", func(t *testing.T) {
		weak := bullish
		weak.Confidence = 0.64

		assert.Nil(t, engine.GenerateSignal(weak, nil))
	})

	t.Run("confidence gate boundary is inclusive", func(t *testing.T) {
		boundary := bullish
		boundary.Confidence = 0.65

		aligned := alignedSeries([]float64{0.5}, []float64{0.01})
		assert.NotNil(t, engine.GenerateSignal(boundary, aligned))
	})

	t.Run("too few mentions is gated", func(t *testing.T) {
		thin := bullish
		thin.MentionCount = 4

		assert.Nil(t, engine.GenerateSignal(thin, nil))
	})

	t.Run("incomplete periods do not contribute to the estimate", func(t *testing.T) {
		aligned := alignedSeries([]float64{0.5}, []float64{0.04})
		aligned = append(aligned, dto.AlignedPeriod{
			Day:           time.Now(),
			SentimentMean: utils.ToPointer(0.9),
		})

		signal := engine.GenerateSignal(bullish, aligned)
		require.NotNil(t, signal)
		assert.InDelta(t, 0.04, signal.ExpectedReturn, 1e-9)
	})
}
