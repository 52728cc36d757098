package dto

import (
	"net/http"
	"time"
)

type BaseResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func NewBaseResponse(code int, message string, data interface{}) *BaseResponse {
	return &BaseResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func NewBadRequestResponse(message string) *BaseResponse {
	return NewBaseResponse(http.StatusBadRequest, message, nil)
}

func NewSuccessResponse(message string, data interface{}) *BaseResponse {
	return NewBaseResponse(http.StatusOK, message, data)
}

type IngestSentimentRequest struct {
	Mentions []SentimentMentionRequest `json:"mentions" validate:"required,min=1,dive"`
}

type SentimentMentionRequest struct {
	Symbol     string    `json:"symbol" validate:"required"`
	ObservedAt time.Time `json:"observed_at" validate:"required"`
	Label      string    `json:"label" validate:"required,oneof=BULLISH BEARISH NEUTRAL"`
	Score      float64   `json:"score" validate:"min=-1,max=1"`
	SourceID   string    `json:"source_id" validate:"required"`
}

type IngestPriceRequest struct {
	Bars []PriceBarRequest `json:"bars" validate:"required,min=1,dive"`
}

type PriceBarRequest struct {
	Symbol      string    `json:"symbol" validate:"required"`
	PeriodStart time.Time `json:"period_start" validate:"required"`
	Close       float64   `json:"close" validate:"gt=0"`
	Volume      int64     `json:"volume" validate:"min=0"`
}

type AnalyzeRequest struct {
	Symbols    []string `json:"symbols" validate:"required,min=1"`
	WindowDays int      `json:"window_days" validate:"min=0"`
}

type IngestResponse struct {
	Received int `json:"received"`
}

// PatternResponse is the API projection of one stored pattern result.
type PatternResponse struct {
	Symbol           string          `json:"symbol"`
	AnalyzedAt       time.Time       `json:"analyzed_at"`
	AnalysisDate     string          `json:"analysis_date"`
	WindowDays       int             `json:"window_days"`
	CorrelationScore float64         `json:"correlation_score"`
	PatternType      PatternType     `json:"pattern_type"`
	Confidence       float64         `json:"confidence"`
	MentionCount     int             `json:"mention_count"`
	AlignedPeriods   int             `json:"aligned_periods"`
	Signal           *TradingSignal  `json:"signal,omitempty"`
	DailyBreakdown   []AlignedPeriod `json:"daily_breakdown,omitempty"`
}

// AnalyzeSymbolResult is one symbol's outcome inside a batch run. Err is a
// string so the batch result stays JSON serializable.
type AnalyzeSymbolResult struct {
	Symbol  string           `json:"symbol"`
	Pattern *PatternResponse `json:"pattern,omitempty"`
	Error   string           `json:"error,omitempty"`
}
