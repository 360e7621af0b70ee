//go:build wireinject
// +build wireinject

package di

import (
	"CoinPulse/pkg/config"
	"CoinPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Storage and ingestion
		ProvideSeriesStore,
		ProvideBarSource,
		ProvidePipeline,

		// Analysis providers
		ProvideTechnical,
		ProvideSentiment,
		ProvideOnChain,
		ProvideForecast,

		// Aggregation and views
		ProvideCache,
		ProvideAggregator,
		ProvideInsight,
		ProvideProber,

		// HTTP surface
		ProvideAPIHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
