package service

import (
	"context"
	"time"

	"CoinPulse/internal/domain/models"
)

// TechnicalProvider evaluates a bar series into a fused signal. It never
// returns an error: on failure the result is degraded.
type TechnicalProvider interface {
	Analyze(ctx context.Context, bars []models.Bar) models.TechnicalResult
}

// SentimentProvider fetches news sentiment for a symbol. It never returns
// an error: on failure the result is the static fallback, degraded.
type SentimentProvider interface {
	Fetch(ctx context.Context, symbol string) models.SentimentResult
}

// OnChainProvider fetches on-chain stats for a symbol. It never returns an
// error; enrichment fields may degrade individually.
type OnChainProvider interface {
	Fetch(ctx context.Context, symbol string) models.OnChainResult
}

// ForecastService is the opaque price-forecasting collaborator. Unlike the
// analysis providers it surfaces its errors; the caller renders them.
type ForecastService interface {
	Predict(ctx context.Context, symbol string, target time.Time) (models.Forecast, error)
}
