package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	domservice "CoinPulse/internal/domain/service"
	"CoinPulse/internal/services/resample"
	"CoinPulse/internal/services/strategy"
	"CoinPulse/pkg/cache"
	"CoinPulse/pkg/logger"
)

// mvrvWindow is the lookback for the locally derived MVRV proxy: last
// close over the rolling mean of the trailing year of closes.
const mvrvWindow = 365

// ResilientAggregator fans out to the three analysis providers and merges
// their sections into one report. Providers run concurrently under the
// caller's context; a failed provider contributes its fallback section,
// so the report is always structurally complete.
type ResilientAggregator struct {
	store     domrepo.SeriesStore
	technical domservice.TechnicalProvider
	sentiment domservice.SentimentProvider
	onchain   domservice.OnChainProvider
	cache     cache.Service
	ttl       time.Duration
	log       *logger.Logger
	now       func() time.Time
}

// NewResilientAggregator builds an aggregator. cacheSvc may be nil to
// disable report caching.
func NewResilientAggregator(
	store domrepo.SeriesStore,
	technical domservice.TechnicalProvider,
	sentiment domservice.SentimentProvider,
	onchain domservice.OnChainProvider,
	cacheSvc cache.Service,
	ttl time.Duration,
	log *logger.Logger,
) *ResilientAggregator {
	return &ResilientAggregator{
		store:     store,
		technical: technical,
		sentiment: sentiment,
		onchain:   onchain,
		cache:     cacheSvc,
		ttl:       ttl,
		log:       log,
		now:       time.Now,
	}
}

func reportKey(symbol string) string {
	return fmt.Sprintf("report:%s", symbol)
}

// Aggregate builds the merged report for a symbol, serving a cached copy
// when one is still fresh.
func (a *ResilientAggregator) Aggregate(ctx context.Context, symbol string) models.AggregatedReport {
	if a.cache != nil {
		var cached models.AggregatedReport
		if err := a.cache.Get(ctx, reportKey(symbol), &cached); err == nil {
			return cached
		}
	}

	bars, err := a.store.Load(ctx, symbol)
	if err != nil {
		bars = nil
	}

	report := models.AggregatedReport{
		Symbol:    symbol,
		Timestamp: a.now().UTC(),
		Technical: make(map[string]models.FusedSignal, len(domrepo.Timeframes())),
		Degraded:  make(map[string]bool, 3),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	wg.Add(3)
	go func() {
		defer wg.Done()
		tech, degraded := a.technicalSections(ctx, bars)
		mu.Lock()
		report.Technical = tech
		report.Degraded[models.SourceTechnical] = degraded
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		res := a.sentiment.Fetch(ctx, symbol)
		mu.Lock()
		report.Sentiment = res.Report
		report.Degraded[models.SourceSentiment] = res.Degraded
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		res := a.onchain.Fetch(ctx, symbol)
		res.Stats.MVRV = deriveMVRV(bars)
		mu.Lock()
		report.OnChain = res.Stats
		report.Degraded[models.SourceOnChain] = res.Degraded
		mu.Unlock()
		if len(res.DegradedFields) > 0 {
			a.log.Debug("on-chain enrichment partially degraded",
				logger.String("symbol", symbol),
				logger.Strings("fields", res.DegradedFields),
			)
		}
	}()
	wg.Wait()

	if a.cache != nil {
		if err := a.cache.Set(ctx, reportKey(symbol), report, a.ttl); err != nil {
			a.log.Warn("report cache write failed",
				logger.String("symbol", symbol),
				logger.Error(err),
			)
		}
	}
	return report
}

// Invalidate drops the cached report for a symbol, forcing the next
// Aggregate call to rebuild it.
func (a *ResilientAggregator) Invalidate(ctx context.Context, symbol string) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Delete(ctx, reportKey(symbol)); err != nil {
		a.log.Warn("report cache invalidation failed",
			logger.String("symbol", symbol),
			logger.Error(err),
		)
	}
}

// technicalSections scores the series per timeframe. Series that resample
// below the engine's minimum come back as N/A, which is a valid verdict,
// not a degradation; degraded only reflects provider failure.
func (a *ResilientAggregator) technicalSections(ctx context.Context, bars []models.Bar) (map[string]models.FusedSignal, bool) {
	out := make(map[string]models.FusedSignal, len(domrepo.Timeframes()))
	degraded := false
	for _, tf := range domrepo.Timeframes() {
		sampled := resample.Resample(bars, tf)
		if len(sampled) < strategy.MinBars {
			out[string(tf)] = models.NotAvailable()
			continue
		}
		res := a.technical.Analyze(ctx, sampled)
		out[string(tf)] = res.Report
		degraded = degraded || res.Degraded
	}
	return out, degraded
}

// deriveMVRV approximates MVRV as the last close over the mean of the
// trailing year of closes.
func deriveMVRV(bars []models.Bar) string {
	if len(bars) == 0 {
		return "N/A"
	}
	start := len(bars) - mvrvWindow
	if start < 0 {
		start = 0
	}
	window := bars[start:]
	var sum float64
	for _, b := range window {
		sum += b.Close
	}
	mean := sum / float64(len(window))
	if mean == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", bars[len(bars)-1].Close/mean)
}
