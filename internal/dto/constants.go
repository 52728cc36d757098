package dto

type PatternType string

const (
	PatternBullish          PatternType = "BULLISH"
	PatternBearish          PatternType = "BEARISH"
	PatternNeutral          PatternType = "NEUTRAL"
	PatternInsufficientData PatternType = "INSUFFICIENT_DATA"
)

type SignalDirection string

const (
	SignalBuy  SignalDirection = "BUY"
	SignalSell SignalDirection = "SELL"
)

type SentimentLabel string

const (
	SentimentBullish SentimentLabel = "BULLISH"
	SentimentBearish SentimentLabel = "BEARISH"
	SentimentNeutral SentimentLabel = "NEUTRAL"
)

func (l SentimentLabel) Valid() bool {
	switch l {
	case SentimentBullish, SentimentBearish, SentimentNeutral:
		return true
	}
	return false
}
