package service

import (
	"context"
	"sentiment-trading/config"
	"sentiment-trading/internal/analysis"
	"sentiment-trading/internal/model"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/utils"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]interface{})}
}

func (c *fakeCache) Set(key string, value interface{}, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *fakeCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	return value, ok
}

func (c *fakeCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *fakeCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]interface{})
}

type stubSentimentRepo struct{}

func (stubSentimentRepo) SaveBulk(ctx context.Context, mentions []model.SentimentMention) error {
	return nil
}

func (stubSentimentRepo) Get(ctx context.Context, param model.GetSentimentParam) ([]model.SentimentMention, error) {
	return nil, nil
}

func (stubSentimentRepo) DistinctSymbols(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (stubSentimentRepo) DeleteOlderThan(ctx context.Context, date time.Time) (int64, error) {
	return 0, nil
}

type stubPriceRepo struct{}

func (stubPriceRepo) SaveBulk(ctx context.Context, bars []model.PriceBar) error { return nil }

func (stubPriceRepo) Get(ctx context.Context, param model.GetPriceParam) ([]model.PriceBar, error) {
	return nil, nil
}

func (stubPriceRepo) DeleteOlderThan(ctx context.Context, date time.Time) (int64, error) {
	return 0, nil
}

type memPatternRepo struct {
	mu   sync.Mutex
	rows map[string]model.PatternResult
}

func newMemPatternRepo() *memPatternRepo {
	return &memPatternRepo{rows: make(map[string]model.PatternResult)}
}

func (r *memPatternRepo) Upsert(ctx context.Context, pattern *model.PatternResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[pattern.Symbol+"|"+pattern.AnalysisDate.Format("2006-01-02")] = *pattern
	return nil
}

func (r *memPatternRepo) GetLatest(ctx context.Context, symbol string) (*model.PatternResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *model.PatternResult
	for k := range r.rows {
		row := r.rows[k]
		if row.Symbol != symbol {
			continue
		}
		if latest == nil || row.AnalysisDate.After(latest.AnalysisDate) {
			latest = &row
		}
	}
	return latest, nil
}

func (r *memPatternRepo) ListRecent(ctx context.Context, limit int, opts ...utils.DBOption) ([]model.PatternResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.PatternResult
	for _, row := range r.rows {
		out = append(out, row)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newTestPatternService(t *testing.T) (PatternService, *fakeCache) {
	t.Helper()

	cfg := &config.Config{
		Log: config.Logger{Level: "error", Encoding: "console"},
		Analysis: config.Analysis{
			WindowDays:                7,
			MinPeriods:                3,
			MinMentions:               5,
			CorrelationThreshold:      0.6,
			SignalConfidenceThreshold: 0.65,
			TargetPeriods:             7,
			TimeZone:                  "UTC",
			MaxConcurrency:            2,
		},
		Cache: config.Cache{DefaultExpiration: 5 * time.Minute},
	}
	log, err := logger.New(cfg)
	require.NoError(t, err)

	patternRepo := newMemPatternRepo()
	analyzer, err := analysis.NewAnalyzer(cfg, log, stubSentimentRepo{}, stubPriceRepo{}, patternRepo)
	require.NoError(t, err)

	memCache := newFakeCache()
	svc := NewPatternService(cfg, log, analyzer, patternRepo, memCache, nil)
	return svc, memCache
}

func TestPatternService_LatestCache(t *testing.T) {
	ctx := context.Background()
	latestAsOf := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	historicalAsOf := latestAsOf.AddDate(0, 0, -5)

	t.Run("historical rerun does not shadow the newer cached result", func(t *testing.T) {
		svc, _ := newTestPatternService(t)

		_, err := svc.Analyze(ctx, "GME", latestAsOf, 7)
		require.NoError(t, err)
		_, err = svc.Analyze(ctx, "GME", historicalAsOf, 7)
		require.NoError(t, err)

		latest, err := svc.GetLatest(ctx, "GME")
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, "2024-03-10", latest.AnalysisDate)
	})

	t.Run("newer run replaces an older cached result", func(t *testing.T) {
		svc, _ := newTestPatternService(t)

		_, err := svc.Analyze(ctx, "GME", historicalAsOf, 7)
		require.NoError(t, err)
		_, err = svc.Analyze(ctx, "GME", latestAsOf, 7)
		require.NoError(t, err)

		latest, err := svc.GetLatest(ctx, "GME")
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, "2024-03-10", latest.AnalysisDate)
	})
}
