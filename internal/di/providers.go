package di

import (
	"fmt"

	domrepo "CoinPulse/internal/domain/repository"
	domservice "CoinPulse/internal/domain/service"
	"CoinPulse/internal/handler/api"
	internalrepo "CoinPulse/internal/repository"
	"CoinPulse/internal/service/forecast"
	"CoinPulse/internal/service/marketdata"
	"CoinPulse/internal/service/onchain"
	"CoinPulse/internal/service/sentiment"
	"CoinPulse/internal/service/technical"
	"CoinPulse/internal/usecase"
	"CoinPulse/pkg/cache"
	"CoinPulse/pkg/config"
	xhttp "CoinPulse/pkg/http"
	"CoinPulse/pkg/logger"
	"CoinPulse/pkg/metrics"
	"CoinPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideSeriesStore creates the file-backed series store.
func ProvideSeriesStore(cfg *config.Config) (domrepo.SeriesStore, error) {
	store, err := internalrepo.NewFileSeriesStore(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("series store: %w", err)
	}
	return store, nil
}

// ProvideBarSource creates the market-data client.
func ProvideBarSource(cfg *config.Config) domrepo.BarSource {
	return marketdata.New(
		cfg.MarketData.BaseURL,
		cfg.MarketData.Timeout,
		marketdata.WithRate(cfg.MarketData.RateCapacity, cfg.MarketData.RateRefill),
	)
}

// ProvidePipeline creates the ingestion pipeline.
func ProvidePipeline(
	store domrepo.SeriesStore,
	source domrepo.BarSource,
	m domrepo.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.IngestionPipeline {
	return usecase.NewIngestionPipeline(store, source, cfg.Data.LookbackYears, cfg.Data.Workers, m, log)
}

// ProvideTechnical creates the technical provider. Without a configured
// base URL the strategy engine runs in-process.
func ProvideTechnical(cfg *config.Config, m domrepo.Metrics, log *logger.Logger) domservice.TechnicalProvider {
	p := cfg.Providers.Technical
	if p.BaseURL == "" {
		return technical.NewLocal()
	}
	return technical.New(p.BaseURL, p.Timeout, p.Retries, p.Backoff, m, log)
}

// ProvideSentiment creates the sentiment provider.
func ProvideSentiment(cfg *config.Config, m domrepo.Metrics, log *logger.Logger) domservice.SentimentProvider {
	p := cfg.Providers.Sentiment
	return sentiment.New(p.BaseURL, p.Timeout, p.Retries, p.Backoff, m, log)
}

// ProvideOnChain creates the on-chain provider.
func ProvideOnChain(cfg *config.Config, m domrepo.Metrics, log *logger.Logger) domservice.OnChainProvider {
	p := cfg.Providers.OnChain
	return onchain.New(p.BaseURL, p.Timeout, p.Retries, p.Backoff, m, log)
}

// ProvideForecast creates the forecast client.
func ProvideForecast(cfg *config.Config) domservice.ForecastService {
	return forecast.New(cfg.Providers.Forecast.BaseURL, cfg.Providers.Forecast.Timeout)
}

// ProvideCache creates the report cache backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Backend == "redis" {
		c, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvideAggregator creates the multi-provider aggregator.
func ProvideAggregator(
	store domrepo.SeriesStore,
	tech domservice.TechnicalProvider,
	sent domservice.SentimentProvider,
	chain domservice.OnChainProvider,
	cacheSvc cache.Service,
	cfg *config.Config,
	log *logger.Logger,
) *usecase.ResilientAggregator {
	return usecase.NewResilientAggregator(store, tech, sent, chain, cacheSvc, cfg.Cache.ReportTTL, log)
}

// ProvideInsight creates the market insight usecase.
func ProvideInsight(store domrepo.SeriesStore, cfg *config.Config) *usecase.Insight {
	return usecase.NewInsight(store, cfg.Data.Symbols)
}

// ProvideProber creates the readiness prober over the configured remote
// collaborators. Providers without a base URL are not probed.
func ProvideProber(cfg *config.Config, log *logger.Logger) *usecase.ReadinessProber {
	var targets []usecase.ProbeTarget
	add := func(name, baseURL string) {
		if baseURL != "" {
			targets = append(targets, usecase.ProbeTarget{Name: name, URL: baseURL + "/health"})
		}
	}
	add("technical", cfg.Providers.Technical.BaseURL)
	add("sentiment", cfg.Providers.Sentiment.BaseURL)
	add("onchain", cfg.Providers.OnChain.BaseURL)
	add("forecast", cfg.Providers.Forecast.BaseURL)
	return usecase.NewReadinessProber(targets, cfg.Providers.Sentiment.Timeout, log)
}

// ProvideAPIHandler creates the HTTP API handler.
func ProvideAPIHandler(
	store domrepo.SeriesStore,
	aggregator *usecase.ResilientAggregator,
	insight *usecase.Insight,
	pipeline *usecase.IngestionPipeline,
	prober *usecase.ReadinessProber,
	fc domservice.ForecastService,
	cfg *config.Config,
	log *logger.Logger,
) xhttp.Handler {
	return api.New(store, aggregator, insight, pipeline, prober, fc, cfg.Data.Symbols, log)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	pipeline *usecase.IngestionPipeline,
	aggregator *usecase.ResilientAggregator,
	handler xhttp.Handler,
	cacheSvc cache.Service,
) *server.App {
	return server.New(cfg, log, pipeline, aggregator, handler, cacheSvc)
}
