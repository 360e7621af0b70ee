package repository

import (
	"context"
	"errors"
	"time"

	"CoinPulse/internal/domain/models"
)

// ErrNoSeries is returned when a symbol has no stored series.
var ErrNoSeries = errors.New("series: no data for symbol")

// SeriesStore reads and writes the append-only per-symbol bar sequence.
// The ingestion pipeline is the only writer; all other components read.
// Concurrent writers to the same symbol are not supported.
type SeriesStore interface {
	// Load returns the full stored series, dates ascending.
	Load(ctx context.Context, symbol string) ([]models.Bar, error)
	// Append merges new bars into the stored series, dropping any whose
	// date is already present, and persists the result. Returns the count
	// actually added.
	Append(ctx context.Context, symbol string, bars []models.Bar) (int, error)
	// LastDate returns the date of the newest stored bar. ok is false when
	// the symbol has no data yet.
	LastDate(ctx context.Context, symbol string) (last time.Time, ok bool, err error)
	// Symbols lists every symbol with a stored series.
	Symbols(ctx context.Context) ([]string, error)
}

// BarSource fetches missing daily bars from the market-data provider.
// An empty result is a valid "nothing new" outcome, not an error.
type BarSource interface {
	FetchDaily(ctx context.Context, symbol string, from time.Time) ([]models.Bar, error)
}

// Metrics records operational metrics.
type Metrics interface {
	RecordIngestOutcome(status string)
	RecordProviderRequest(provider string)
	RecordProviderDegraded(provider, class string)
	RecordProviderLatency(provider string, seconds float64)
	RecordBarsStored(symbol string, count int)
}
