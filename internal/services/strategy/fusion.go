package strategy

import (
	"CoinPulse/internal/domain/models"
)

// MinBars is the shortest series the engine will score. It comfortably
// covers the longest indicator warmup so every strategy votes on real
// values rather than padding.
const MinBars = 50

// Engine fuses the votes of the registered strategies into one signal.
type Engine struct {
	strategies []Strategy
}

// NewEngine builds an engine with the full strategy set.
func NewEngine() *Engine {
	return &Engine{strategies: All()}
}

// Analyze scores the latest row of bars. Series shorter than MinBars
// produce the N/A signal with no votes.
func (e *Engine) Analyze(bars []models.Bar) models.FusedSignal {
	if len(bars) < MinBars {
		return models.NotAvailable()
	}

	f := NewFrame(bars)
	for _, s := range e.strategies {
		s.Compute(f)
	}

	i := f.Len() - 1
	votes := make([]models.IndicatorVote, 0, len(e.strategies))
	total := 0

	// MinBars exceeds every strategy warmup, so the last row is always
	// past the indicator padding and every strategy casts a real vote.
	for _, s := range e.strategies {
		score := s.Evaluate(f, i)
		total += score

		values := make(map[string]float64, len(s.Columns()))
		for _, col := range s.Columns() {
			if v, ok := f.Value(col, i); ok {
				values[col] = v
			}
		}

		votes = append(votes, models.IndicatorVote{
			Name:   s.Name(),
			Score:  score,
			Signal: voteSignal(score),
			Values: values,
		})
	}

	return models.FusedSignal{
		OverallSignal: models.SignalFromScore(total),
		OverallScore:  total,
		Signals:       votes,
	}
}

func voteSignal(score int) string {
	switch {
	case score > 0:
		return models.SignalBuy
	case score < 0:
		return models.SignalSell
	default:
		return models.SignalHold
	}
}
