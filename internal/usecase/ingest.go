package usecase

import (
	"context"
	"sync"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	"CoinPulse/pkg/logger"
)

// IngestionPipeline backfills the stored daily series for a configured
// symbol universe. Each run plans per-symbol gaps, fetches only the
// missing tail, and merges it into the store. Symbols fail independently;
// one bad provider response never aborts the batch.
type IngestionPipeline struct {
	store   domrepo.SeriesStore
	source  domrepo.BarSource
	planner GapPlanner
	metrics domrepo.Metrics
	log     *logger.Logger
	workers int
	now     func() time.Time
}

// NewIngestionPipeline builds a pipeline over the given store and source.
// workers bounds concurrent symbol processing; values below 1 fall back
// to a single worker.
func NewIngestionPipeline(
	store domrepo.SeriesStore,
	source domrepo.BarSource,
	lookbackYears int,
	workers int,
	metrics domrepo.Metrics,
	log *logger.Logger,
) *IngestionPipeline {
	if workers < 1 {
		workers = 1
	}
	return &IngestionPipeline{
		store:   store,
		source:  source,
		planner: GapPlanner{LookbackYears: lookbackYears},
		metrics: metrics,
		log:     log,
		workers: workers,
		now:     time.Now,
	}
}

type symbolPlan struct {
	symbol string
	from   time.Time
}

// Run backfills every symbol and returns one outcome per symbol.
func (p *IngestionPipeline) Run(ctx context.Context, symbols []string) map[string]models.IngestOutcome {
	started := p.now()
	outcomes := make(map[string]models.IngestOutcome, len(symbols))
	var mu sync.Mutex

	record := func(symbol string, o models.IngestOutcome) {
		mu.Lock()
		outcomes[symbol] = o
		mu.Unlock()
		if p.metrics != nil {
			p.metrics.RecordIngestOutcome(string(o.Status))
		}
	}

	plans := p.plan(ctx, symbols, record)

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup
	for _, pl := range plans {
		wg.Add(1)
		sem <- struct{}{}
		go func(pl symbolPlan) {
			defer wg.Done()
			defer func() { <-sem }()
			record(pl.symbol, p.ingestOne(ctx, pl))
		}(pl)
	}
	wg.Wait()

	p.log.Info("ingestion run finished",
		logger.Int("symbols", len(symbols)),
		logger.Int("fetched", len(plans)),
		logger.Duration("elapsed", p.now().Sub(started)),
	)
	return outcomes
}

// plan resolves each symbol's missing range concurrently. Symbols that are
// already caught up are recorded as SKIP and excluded from the fetch phase.
func (p *IngestionPipeline) plan(ctx context.Context, symbols []string, record func(string, models.IngestOutcome)) []symbolPlan {
	today := p.now().UTC()
	plans := make([]symbolPlan, 0, len(symbols))
	var mu sync.Mutex

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup
	for _, symbol := range symbols {
		wg.Add(1)
		sem <- struct{}{}
		go func(symbol string) {
			defer wg.Done()
			defer func() { <-sem }()

			last, ok, err := p.store.LastDate(ctx, symbol)
			if err != nil {
				record(symbol, models.IngestOutcome{Status: models.OutcomeError, Error: err.Error()})
				return
			}
			from, need := p.planner.Plan(today, last, ok)
			if !need {
				p.log.Debug("series up to date", logger.String("symbol", symbol))
				record(symbol, models.IngestOutcome{Status: models.OutcomeSkip})
				return
			}
			mu.Lock()
			plans = append(plans, symbolPlan{symbol: symbol, from: from})
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()
	return plans
}

func (p *IngestionPipeline) ingestOne(ctx context.Context, pl symbolPlan) models.IngestOutcome {
	bars, err := p.source.FetchDaily(ctx, pl.symbol, pl.from)
	if err != nil {
		p.log.Warn("fetch failed",
			logger.String("symbol", pl.symbol),
			logger.Error(err),
		)
		return models.IngestOutcome{Status: models.OutcomeError, Error: err.Error()}
	}
	if len(bars) == 0 {
		// Nothing new upstream. The store is untouched so the next run
		// replans the same gap.
		return models.IngestOutcome{Status: models.OutcomeNoData}
	}

	added, err := p.store.Append(ctx, pl.symbol, bars)
	if err != nil {
		p.log.Error("append failed",
			logger.String("symbol", pl.symbol),
			logger.Error(err),
		)
		return models.IngestOutcome{Status: models.OutcomeError, Error: err.Error()}
	}

	if p.metrics != nil {
		if series, err := p.store.Load(ctx, pl.symbol); err == nil {
			p.metrics.RecordBarsStored(pl.symbol, len(series))
		}
	}
	p.log.Info("symbol backfilled",
		logger.String("symbol", pl.symbol),
		logger.Int("added", added),
	)
	return models.IngestOutcome{Status: models.OutcomeSuccess, Added: added}
}
