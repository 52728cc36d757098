package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sentiment-trading/config"
	"sentiment-trading/internal/analysis"
	"sentiment-trading/internal/dto"
	"sentiment-trading/internal/model"
	"sentiment-trading/internal/repository"
	"sentiment-trading/pkg/cache"
	"sentiment-trading/pkg/common"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/utils"
	"time"
)

type PatternService interface {
	Analyze(ctx context.Context, symbol string, asOf time.Time, windowDays int) (*dto.PatternResponse, error)
	AnalyzeMany(ctx context.Context, symbols []string, asOf time.Time, windowDays int) []dto.AnalyzeSymbolResult
	GetLatest(ctx context.Context, symbol string) (*dto.PatternResponse, error)
	ListRecent(ctx context.Context, symbol string, limit int) ([]dto.PatternResponse, error)
}

type patternService struct {
	cfg           *config.Config
	log           *logger.Logger
	analyzer      *analysis.Analyzer
	patternRepo   repository.PatternRepository
	inmemoryCache cache.Cache
	alertService  AlertService
}

func NewPatternService(
	cfg *config.Config,
	log *logger.Logger,
	analyzer *analysis.Analyzer,
	patternRepo repository.PatternRepository,
	inmemoryCache cache.Cache,
	alertService AlertService,
) PatternService {
	return &patternService{
		cfg:           cfg,
		log:           log,
		analyzer:      analyzer,
		patternRepo:   patternRepo,
		inmemoryCache: inmemoryCache,
		alertService:  alertService,
	}
}

func (s *patternService) Analyze(ctx context.Context, symbol string, asOf time.Time, windowDays int) (*dto.PatternResponse, error) {
	pattern, err := s.analyzer.Analyze(ctx, symbol, asOf, windowDays)
	if err != nil {
		return nil, err
	}

	s.afterAnalysis(ctx, pattern)
	return toPatternResponse(pattern, true), nil
}

func (s *patternService) AnalyzeMany(ctx context.Context, symbols []string, asOf time.Time, windowDays int) []dto.AnalyzeSymbolResult {
	batch := s.analyzer.AnalyzeMany(ctx, symbols, asOf, windowDays)

	results := make([]dto.AnalyzeSymbolResult, 0, len(batch))
	for _, r := range batch {
		out := dto.AnalyzeSymbolResult{Symbol: r.Symbol}
		if r.Err != nil {
			out.Error = r.Err.Error()
		} else {
			s.afterAnalysis(ctx, r.Pattern)
			out.Pattern = toPatternResponse(r.Pattern, false)
		}
		results = append(results, out)
	}
	return results
}

// afterAnalysis refreshes the hot-read cache and fires signal notifications.
// Notification failures are logged, never surfaced into the analysis result.
func (s *patternService) afterAnalysis(ctx context.Context, pattern *model.PatternResult) {
	key := fmt.Sprintf(common.KEY_LATEST_PATTERN, pattern.Symbol)

	// A backfill run with a historical asOf must not shadow a newer cached
	// result; GetLatest serves whatever sits under this key for the TTL.
	newest := true
	if cached, found := s.inmemoryCache.Get(key); found {
		if prev, ok := cached.(*model.PatternResult); ok && prev.AnalysisDate.After(pattern.AnalysisDate) {
			newest = false
		}
	}
	if newest {
		s.inmemoryCache.Set(key, pattern, s.cfg.Cache.DefaultExpiration)
	}

	if pattern.HasSignal() && s.alertService != nil {
		snapshot := *pattern
		utils.GoSafe(func() {
			s.alertService.NotifySignal(context.WithoutCancel(ctx), &snapshot)
		})
	}
}

func (s *patternService) GetLatest(ctx context.Context, symbol string) (*dto.PatternResponse, error) {
	if err := analysis.ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	key := fmt.Sprintf(common.KEY_LATEST_PATTERN, symbol)
	if cached, found := s.inmemoryCache.Get(key); found {
		if pattern, ok := cached.(*model.PatternResult); ok {
			return toPatternResponse(pattern, true), nil
		}
	}

	pattern, err := s.patternRepo.GetLatest(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest pattern for %s: %w", symbol, err)
	}
	if pattern == nil {
		return nil, nil
	}

	s.inmemoryCache.Set(key, pattern, s.cfg.Cache.DefaultExpiration)
	return toPatternResponse(pattern, true), nil
}

func (s *patternService) ListRecent(ctx context.Context, symbol string, limit int) ([]dto.PatternResponse, error) {
	if limit <= 0 {
		limit = 20
	}

	var opts []utils.DBOption
	if symbol != "" {
		if err := analysis.ValidateSymbol(symbol); err != nil {
			return nil, err
		}
		opts = append(opts, utils.WithWhere("symbol = ?", symbol))
	}

	patterns, err := s.patternRepo.ListRecent(ctx, limit, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent patterns: %w", err)
	}

	responses := make([]dto.PatternResponse, 0, len(patterns))
	for i := range patterns {
		responses = append(responses, *toPatternResponse(&patterns[i], false))
	}
	return responses, nil
}

func toPatternResponse(p *model.PatternResult, withBreakdown bool) *dto.PatternResponse {
	resp := &dto.PatternResponse{
		Symbol:           p.Symbol,
		AnalyzedAt:       p.AnalyzedAt,
		AnalysisDate:     p.AnalysisDate.Format("2006-01-02"),
		WindowDays:       p.WindowDays,
		CorrelationScore: p.CorrelationScore,
		PatternType:      dto.PatternType(p.PatternType),
		Confidence:       p.Confidence,
		MentionCount:     p.MentionCount,
		AlignedPeriods:   p.AlignedPeriods,
	}

	if p.HasSignal() {
		resp.Signal = &dto.TradingSignal{
			Direction:      dto.SignalDirection(*p.SignalDirection),
			ExpectedReturn: *p.ExpectedReturn,
			Confidence:     *p.SignalConfidence,
		}
	}

	if withBreakdown && len(p.DailyBreakdown) > 0 {
		var breakdown []dto.AlignedPeriod
		if err := json.Unmarshal(p.DailyBreakdown, &breakdown); err == nil {
			resp.DailyBreakdown = breakdown
		}
	}

	return resp
}
