package technical

import (
	"context"

	"CoinPulse/internal/domain/models"
	domservice "CoinPulse/internal/domain/service"
	"CoinPulse/internal/services/strategy"
)

// Local evaluates bars in-process with the strategy engine. Used when no
// remote technical service is configured; it cannot degrade.
type Local struct {
	engine *strategy.Engine
}

// NewLocal creates an in-process technical provider.
func NewLocal() *Local {
	return &Local{engine: strategy.NewEngine()}
}

func (l *Local) Analyze(_ context.Context, bars []models.Bar) models.TechnicalResult {
	return models.TechnicalResult{Report: l.engine.Analyze(bars)}
}

var _ domservice.TechnicalProvider = (*Local)(nil)
