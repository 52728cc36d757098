package analysis

import (
	"fmt"
	"sentiment-trading/internal/dto"
	"sentiment-trading/internal/model"
	"sentiment-trading/pkg/utils"
	"time"
)

// BuildPriceWindow collapses chronologically ordered bars into a per-day
// close/return series over the window ending on the day of asOf. The return
// for a day is close / previousClose - 1 against the prior in-window trading
// day; the first day present has no prior close and carries a nil return.
// Non-trading days are left out rather than interpolated.
func BuildPriceWindow(bars []model.PriceBar, asOf time.Time, windowDays int, loc *time.Location) ([]dto.DailyPrice, error) {
	start, end := utils.WindowBounds(asOf, windowDays, loc)
	endExclusive := end.AddDate(0, 0, 1)

	var (
		series   []dto.DailyPrice
		lastSeen time.Time
	)

	for i := range bars {
		b := &bars[i]
		if err := ValidateSymbol(b.Symbol); err != nil {
			return nil, err
		}
		if b.Close <= 0 {
			return nil, &ValidationError{Field: "close", Reason: fmt.Sprintf("%.4f must be positive (%s at %s)", b.Close, b.Symbol, b.PeriodStart.Format(time.RFC3339))}
		}
		if b.Volume < 0 {
			return nil, &ValidationError{Field: "volume", Reason: fmt.Sprintf("%d must be non-negative (%s at %s)", b.Volume, b.Symbol, b.PeriodStart.Format(time.RFC3339))}
		}
		// The market-data contract promises chronological order; a misordered
		// series would silently corrupt the return calculation.
		if i > 0 && b.PeriodStart.Before(lastSeen) {
			return nil, &ValidationError{Field: "period_start", Reason: fmt.Sprintf("bars out of chronological order at %s", b.PeriodStart.Format(time.RFC3339))}
		}
		lastSeen = b.PeriodStart

		if b.PeriodStart.Before(start) || !b.PeriodStart.Before(endExclusive) {
			continue
		}

		day := utils.DayOf(b.PeriodStart, loc)
		if n := len(series); n > 0 && series[n-1].Day.Equal(day) {
			// Several bars on one day: the last one carries the day's close.
			series[n-1].Close = b.Close
			continue
		}
		series = append(series, dto.DailyPrice{Day: day, Close: b.Close})
	}

	for i := 1; i < len(series); i++ {
		prev := series[i-1].Close
		series[i].Return = utils.ToPointer(series[i].Close/prev - 1)
	}

	return series, nil
}
