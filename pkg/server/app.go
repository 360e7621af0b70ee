package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/internal/usecase"
	"CoinPulse/pkg/cache"
	"CoinPulse/pkg/config"
	xhttp "CoinPulse/pkg/http"
	"CoinPulse/pkg/logger"
)

// App encapsulates the application lifecycle: the ingestion schedule, the
// HTTP server, and graceful shutdown.
type App struct {
	cfg        *config.Config
	log        *logger.Logger
	pipeline   *usecase.IngestionPipeline
	aggregator *usecase.ResilientAggregator
	handler    xhttp.Handler
	cache      cache.Service
	httpServer *xhttp.Server
}

// New creates the App with its dependencies.
func New(
	cfg *config.Config,
	log *logger.Logger,
	pipeline *usecase.IngestionPipeline,
	aggregator *usecase.ResilientAggregator,
	handler xhttp.Handler,
	cacheSvc cache.Service,
) *App {
	return &App{
		cfg:        cfg,
		log:        log,
		pipeline:   pipeline,
		aggregator: aggregator,
		handler:    handler,
		cache:      cacheSvc,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.cfg.Data.IngestOnStart {
		go a.runIngest(ctx)
	}
	if a.cfg.Data.RefreshInterval > 0 {
		go a.refreshLoop(ctx)
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", logger.Error(err))
		return err
	}
	a.log.Info("serving",
		logger.Int("port", a.cfg.Server.Port),
		logger.Strings("symbols", a.cfg.Data.Symbols),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

func (a *App) runIngest(ctx context.Context) {
	outcomes := a.pipeline.Run(ctx, a.cfg.Data.Symbols)
	counts := map[models.OutcomeStatus]int{}
	for symbol, o := range outcomes {
		counts[o.Status]++
		if o.Status == models.OutcomeError {
			a.log.Warn("ingest outcome",
				logger.String("symbol", symbol),
				logger.String("outcome", o.String()),
			)
		}
		if o.Status == models.OutcomeSuccess && o.Added > 0 {
			a.aggregator.Invalidate(ctx, symbol)
		}
	}
	a.log.Info("ingest summary",
		logger.Int("success", counts[models.OutcomeSuccess]),
		logger.Int("skip", counts[models.OutcomeSkip]),
		logger.Int("no_data", counts[models.OutcomeNoData]),
		logger.Int("error", counts[models.OutcomeError]),
	)
}

func (a *App) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.Data.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.runIngest(ctx)
		}
	}
}

func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", logger.Error(err))
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", logger.Error(err))
		}
	}
	a.log.Info("shutdown complete")
	return nil
}
