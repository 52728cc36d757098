package analysis

import (
	"sentiment-trading/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barAt(symbol string, day time.Time, close float64) model.PriceBar {
	return model.PriceBar{
		Symbol:      symbol,
		PeriodStart: day.Add(16 * time.Hour),
		Close:       close,
		Volume:      1000,
	}
}

func TestBuildPriceWindow(t *testing.T) {
	loc := time.UTC
	asOf := time.Date(2024, 3, 10, 15, 30, 0, 0, loc)
	day := func(offset int) time.Time {
		return time.Date(2024, 3, 10+offset, 0, 0, 0, 0, loc)
	}

	t.Run("computes day over day returns, first day nil", func(t *testing.T) {
		bars := []model.PriceBar{
			barAt("GME", day(-2), 100),
			barAt("GME", day(-1), 110),
			barAt("GME", day(0), 99),
		}

		series, err := BuildPriceWindow(bars, asOf, 3, loc)
		require.NoError(t, err)
		require.Len(t, series, 3)

		assert.Nil(t, series[0].Return)
		require.NotNil(t, series[1].Return)
		assert.InDelta(t, 0.10, *series[1].Return, 1e-9)
		require.NotNil(t, series[2].Return)
		assert.InDelta(t, -0.10, *series[2].Return, 1e-9)
	})

	t.Run("gaps stay missing, return spans the gap", func(t *testing.T) {
		bars := []model.PriceBar{
			barAt("GME", day(-4), 100),
			// no trading on day -3 and -2
			barAt("GME", day(-1), 105),
		}

		series, err := BuildPriceWindow(bars, asOf, 5, loc)
		require.NoError(t, err)
		require.Len(t, series, 2)
		assert.Equal(t, day(-4), series[0].Day)
		assert.Equal(t, day(-1), series[1].Day)
		require.NotNil(t, series[1].Return)
		assert.InDelta(t, 0.05, *series[1].Return, 1e-9)
	})

	t.Run("bars outside the window are ignored", func(t *testing.T) {
		bars := []model.PriceBar{
			barAt("GME", day(-10), 50),
			barAt("GME", day(-1), 100),
			barAt("GME", day(0), 101),
		}

		series, err := BuildPriceWindow(bars, asOf, 3, loc)
		require.NoError(t, err)
		require.Len(t, series, 2)
		assert.Nil(t, series[0].Return)
	})

	t.Run("last bar of a day carries its close", func(t *testing.T) {
		early := barAt("GME", day(0), 100)
		late := barAt("GME", day(0), 103)
		late.PeriodStart = late.PeriodStart.Add(2 * time.Hour)

		series, err := BuildPriceWindow([]model.PriceBar{early, late}, asOf, 1, loc)
		require.NoError(t, err)
		require.Len(t, series, 1)
		assert.Equal(t, 103.0, series[0].Close)
	})

	t.Run("rejects unordered bars", func(t *testing.T) {
		bars := []model.PriceBar{
			barAt("GME", day(0), 100),
			barAt("GME", day(-1), 99),
		}

		_, err := BuildPriceWindow(bars, asOf, 3, loc)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects non-positive close", func(t *testing.T) {
		bars := []model.PriceBar{barAt("GME", day(0), 0)}

		_, err := BuildPriceWindow(bars, asOf, 1, loc)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("empty input yields empty series", func(t *testing.T) {
		series, err := BuildPriceWindow(nil, asOf, 7, loc)
		require.NoError(t, err)
		assert.Empty(t, series)
	})
}
