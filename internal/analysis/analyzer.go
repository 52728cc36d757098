package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"sentiment-trading/config"
	"sentiment-trading/internal/model"
	"sentiment-trading/internal/repository"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/utils"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// Analyzer runs the full per-symbol pipeline: aggregate sentiment, build the
// price window, correlate, generate the signal, persist the result. Symbols
// are independent, so a batch fans out over a bounded worker pool.
type Analyzer struct {
	cfg           *config.Config
	log           *logger.Logger
	engine        *Engine
	loc           *time.Location
	sentimentRepo repository.SentimentRepository
	priceRepo     repository.PriceRepository
	patternRepo   repository.PatternRepository
}

// SymbolResult is one symbol's outcome in a batch run. A failed symbol never
// aborts the batch; its error is carried here instead.
type SymbolResult struct {
	Symbol  string
	Pattern *model.PatternResult
	Err     error
}

func NewAnalyzer(
	cfg *config.Config,
	log *logger.Logger,
	sentimentRepo repository.SentimentRepository,
	priceRepo repository.PriceRepository,
	patternRepo repository.PatternRepository,
) (*Analyzer, error) {
	loc, err := time.LoadLocation(cfg.Analysis.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid analysis time zone %q: %w", cfg.Analysis.TimeZone, err)
	}

	return &Analyzer{
		cfg:           cfg,
		log:           log,
		engine:        NewEngine(cfg.Analysis),
		loc:           loc,
		sentimentRepo: sentimentRepo,
		priceRepo:     priceRepo,
		patternRepo:   patternRepo,
	}, nil
}

// Analyze runs one symbol's analysis as of the given instant and upserts the
// result keyed on (symbol, day of asOf). windowDays <= 0 falls back to the
// configured default.
func (a *Analyzer) Analyze(ctx context.Context, symbol string, asOf time.Time, windowDays int) (*model.PatternResult, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	if windowDays <= 0 {
		windowDays = a.cfg.Analysis.WindowDays
	}

	start, end := utils.WindowBounds(asOf, windowDays, a.loc)
	endExclusive := end.AddDate(0, 0, 1)

	var (
		mentions []model.SentimentMention
		bars     []model.PriceBar
	)

	// The two loads are independent reads of different stores.
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mentions, err = a.sentimentRepo.Get(gCtx, model.GetSentimentParam{Symbol: symbol, From: start, To: endExclusive})
		if err != nil {
			return fmt.Errorf("failed to load sentiment mentions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		bars, err = a.priceRepo.Get(gCtx, model.GetPriceParam{Symbol: symbol, From: start, To: endExclusive})
		if err != nil {
			return fmt.Errorf("failed to load price bars: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sentimentSeries, err := AggregateSentiment(mentions, asOf, windowDays, a.loc)
	if err != nil {
		return nil, err
	}
	priceSeries, err := BuildPriceWindow(bars, asOf, windowDays, a.loc)
	if err != nil {
		return nil, err
	}

	aligned := AlignPeriods(sentimentSeries, priceSeries)
	outcome := a.engine.Correlate(aligned, len(mentions))
	signal := a.engine.GenerateSignal(outcome, aligned)

	breakdown, err := json.Marshal(aligned)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal daily breakdown: %w", err)
	}

	result := &model.PatternResult{
		Symbol:           symbol,
		AnalysisDate:     end,
		AnalyzedAt:       time.Now().In(a.loc),
		WindowDays:       windowDays,
		CorrelationScore: outcome.CorrelationScore,
		PatternType:      string(outcome.PatternType),
		Confidence:       outcome.Confidence,
		MentionCount:     outcome.MentionCount,
		AlignedPeriods:   outcome.AlignedCount,
		DailyBreakdown:   datatypes.JSON(breakdown),
	}
	if signal != nil {
		result.SignalDirection = utils.ToPointer(string(signal.Direction))
		result.ExpectedReturn = utils.ToPointer(signal.ExpectedReturn)
		result.SignalConfidence = utils.ToPointer(signal.Confidence)
	}

	if err := a.patternRepo.Upsert(ctx, result); err != nil {
		return nil, fmt.Errorf("%w: upsert pattern for %s: %v", ErrPersistence, symbol, err)
	}

	a.log.DebugContext(ctx, "Analyzed symbol",
		logger.StringField("symbol", symbol),
		logger.StringField("pattern_type", result.PatternType),
		logger.Float64Field("correlation_score", result.CorrelationScore),
		logger.Float64Field("confidence", result.Confidence),
		logger.IntField("mention_count", result.MentionCount),
	)

	return result, nil
}

// AnalyzeMany is a parallel map of Analyze over symbols. Per-symbol failures
// are isolated into the result slice; the batch always runs to completion
// unless the context is cancelled.
func (a *Analyzer) AnalyzeMany(ctx context.Context, symbols []string, asOf time.Time, windowDays int) []SymbolResult {
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		results   []SymbolResult
		semaphore = make(chan struct{}, a.cfg.Analysis.MaxConcurrency)
	)

	a.log.Debug("Start analyzing symbols", logger.IntField("total_symbols", len(symbols)))

	for _, symbol := range symbols {
		if !utils.ShouldContinue(ctx, a.log) {
			a.log.Info("Received stop signal, batch analysis stopped")
			break
		}

		symbol := symbol
		wg.Add(1)
		semaphore <- struct{}{}

		utils.GoSafe(func() {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			pattern, err := a.Analyze(ctx, symbol, asOf, windowDays)
			if err != nil {
				a.log.Error("Failed to analyze symbol",
					logger.ErrorField(err),
					logger.StringField("symbol", symbol),
				)
			}

			mu.Lock()
			results = append(results, SymbolResult{Symbol: symbol, Pattern: pattern, Err: err})
			mu.Unlock()
		})
	}

	wg.Wait()

	a.log.Info("Batch analysis completed",
		logger.IntField("total_symbols", len(symbols)),
		logger.IntField("analyzed", len(results)),
	)

	return results
}
