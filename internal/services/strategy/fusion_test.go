package strategy

import (
	"testing"
	"time"

	"CoinPulse/internal/domain/models"
)

func series(n int, close func(i int) float64) []models.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, n)
	for i := range bars {
		c := close(i)
		bars[i] = models.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   c * 0.99,
			High:   c * 1.01,
			Low:    c * 0.98,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestAnalyzeShortSeriesIsNA(t *testing.T) {
	e := NewEngine()
	for _, n := range []int{0, 1, MinBars - 1} {
		got := e.Analyze(series(n, func(i int) float64 { return 100 }))
		if got.OverallSignal != models.SignalNA || got.OverallScore != 0 || len(got.Signals) != 0 {
			t.Fatalf("n=%d: got %+v, want N/A", n, got)
		}
	}
}

func TestAnalyzeReportsEveryStrategy(t *testing.T) {
	e := NewEngine()
	got := e.Analyze(series(60, func(i int) float64 { return 100 + float64(i) }))

	wantNames := []string{"RSI", "MACD", "Stochastic", "ADX", "CCI", "Bollinger", "Volume", "SMA", "EMA", "WMA"}
	if len(got.Signals) != len(wantNames) {
		t.Fatalf("got %d votes, want %d", len(got.Signals), len(wantNames))
	}
	sum := 0
	for i, v := range got.Signals {
		if v.Name != wantNames[i] {
			t.Errorf("vote %d named %q, want %q", i, v.Name, wantNames[i])
		}
		if v.Score < -1 || v.Score > 1 {
			t.Errorf("%s score %d out of bounds", v.Name, v.Score)
		}
		sum += v.Score
	}
	if got.OverallScore != sum {
		t.Errorf("overall score %d, votes sum to %d", got.OverallScore, sum)
	}
	if got.OverallSignal != models.SignalFromScore(sum) {
		t.Errorf("overall signal %q inconsistent with score %d", got.OverallSignal, sum)
	}
}

func TestAnalyzeUptrendVotes(t *testing.T) {
	e := NewEngine()
	got := e.Analyze(series(60, func(i int) float64 { return 100 + float64(i) }))

	byName := make(map[string]models.IndicatorVote, len(got.Signals))
	for _, v := range got.Signals {
		byName[v.Name] = v
	}

	// Every delta is a gain, so RSI pins at 100 and votes against.
	if byName["RSI"].Score != -1 {
		t.Errorf("RSI vote = %d, want -1", byName["RSI"].Score)
	}
	// The last close sits above every 20-period average of an increasing
	// series.
	for _, name := range []string{"SMA", "EMA", "WMA"} {
		if byName[name].Score != 1 {
			t.Errorf("%s vote = %d, want +1", name, byName[name].Score)
		}
	}
}

func TestAnalyzeVotesCarryIndicatorValues(t *testing.T) {
	e := NewEngine()
	got := e.Analyze(series(60, func(i int) float64 { return 100 + float64(i) }))

	for _, v := range got.Signals {
		if len(v.Values) == 0 {
			t.Errorf("%s vote has no indicator values", v.Name)
		}
	}
	var macd models.IndicatorVote
	for _, v := range got.Signals {
		if v.Name == "MACD" {
			macd = v
		}
	}
	if _, ok := macd.Values["macd"]; !ok {
		t.Error("MACD vote missing macd value")
	}
	if _, ok := macd.Values["macd_signal"]; !ok {
		t.Error("MACD vote missing macd_signal value")
	}
}

func TestAnalyzeAtMinBarsEveryVoteIsEvaluated(t *testing.T) {
	e := NewEngine()
	got := e.Analyze(series(MinBars, func(i int) float64 { return 100 + float64(i%5) }))

	if len(got.Signals) != len(e.strategies) {
		t.Fatalf("got %d votes, want %d", len(got.Signals), len(e.strategies))
	}
	// The shortest scorable series is already past every warmup, so no
	// vote is a placeholder without indicator values.
	for _, v := range got.Signals {
		if len(v.Values) == 0 {
			t.Errorf("%s vote carries no indicator values at %d bars", v.Name, MinBars)
		}
	}
}

func TestAnalyzeOversoldDipVotes(t *testing.T) {
	// Sideways chop into a sharp three-day slide: the last close lands far
	// below the lower Bollinger band with RSI deep in oversold territory,
	// so both mean reversion and momentum vote to buy.
	closes := []float64{
		100, 101, 100, 101, 100, 101, 100, 101, 100, 101,
		100, 101, 100, 101, 100, 101, 100, 101, 100, 101,
		100, 101, 100, 101, 100, 101, 100, 101, 100, 101,
		100, 101, 100, 101, 100, 101, 100, 101, 100, 101,
		100, 101, 100, 101, 100, 101, 100, 101, 100, 101,
		100, 101, 100, 101, 100, 101, 100,
		95, 85, 60,
	}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{Date: start.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 1000}
	}

	got := NewEngine().Analyze(bars)

	byName := make(map[string]models.IndicatorVote, len(got.Signals))
	for _, v := range got.Signals {
		byName[v.Name] = v
	}

	rsi := byName["RSI"]
	if v := rsi.Values["rsi"]; v >= 30 {
		t.Errorf("rsi = %.2f, want oversold", v)
	}
	if rsi.Score != 1 {
		t.Errorf("RSI vote = %d, want +1", rsi.Score)
	}

	bb := byName["Bollinger"]
	if lower := bb.Values["bb_lower"]; lower <= closes[len(closes)-1] {
		t.Errorf("bb_lower = %.2f, want above last close %.0f", lower, closes[len(closes)-1])
	}
	if bb.Score != 1 {
		t.Errorf("Bollinger vote = %d, want +1", bb.Score)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	e := NewEngine()
	bars := series(75, func(i int) float64 { return 100 + 10*float64(i%7) })

	a := e.Analyze(bars)
	b := e.Analyze(bars)
	if a.OverallScore != b.OverallScore || a.OverallSignal != b.OverallSignal {
		t.Fatalf("analysis not deterministic: %+v vs %+v", a, b)
	}
	for i := range a.Signals {
		if a.Signals[i].Score != b.Signals[i].Score {
			t.Fatalf("vote %s differs between runs", a.Signals[i].Name)
		}
	}
}

// stubStrategy always votes a fixed score; used to pin fusion thresholds.
type stubStrategy struct {
	name  string
	score int
}

func (s stubStrategy) Name() string             { return s.name }
func (stubStrategy) Columns() []string          { return nil }
func (stubStrategy) Warmup() int                { return 0 }
func (stubStrategy) Compute(*Frame)             {}
func (s stubStrategy) Evaluate(*Frame, int) int { return s.score }

func TestFusionThresholds(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   string
	}{
		{"exactly buy threshold", []int{1, 1, 1}, models.SignalBuy},
		{"one short of buy", []int{1, 1}, models.SignalHold},
		{"exactly sell threshold", []int{-1, -1, -1}, models.SignalSell},
		{"one short of sell", []int{-1, -1}, models.SignalHold},
		{"mixed cancels out", []int{1, -1, 1, -1}, models.SignalHold},
		{"strong buy", []int{1, 1, 1, 1, 1}, models.SignalBuy},
	}

	bars := series(MinBars, func(i int) float64 { return 100 })
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategies := make([]Strategy, len(tt.scores))
			for i, score := range tt.scores {
				strategies[i] = stubStrategy{name: "stub", score: score}
			}
			e := &Engine{strategies: strategies}

			got := e.Analyze(bars)
			if got.OverallSignal != tt.want {
				t.Fatalf("signal = %q (score %d), want %q", got.OverallSignal, got.OverallScore, tt.want)
			}
		})
	}
}
