package models

// Rendered signal values. SignalNA marks a series too short to evaluate.
const (
	SignalBuy  = "BUY"
	SignalSell = "SELL"
	SignalHold = "HOLD"
	SignalNA   = "N/A"
)

// Fusion thresholds: the summed vote must reach +3 for BUY and -3 for SELL.
const (
	BuyThreshold  = 3
	SellThreshold = -3
)

// IndicatorVote is one strategy's bounded opinion on the latest row.
// Values holds the observed indicator readings; a missing key means the
// indicator was undefined for that row.
type IndicatorVote struct {
	Name   string             `json:"name"`
	Score  int                `json:"score"`
	Signal string             `json:"signal"`
	Values map[string]float64 `json:"values,omitempty"`
}

// FusedSignal is the combined verdict of the strategy set over one series.
type FusedSignal struct {
	OverallSignal string          `json:"overall_signal"`
	OverallScore  int             `json:"overall_score"`
	Signals       []IndicatorVote `json:"signals"`
}

// NotAvailable is the fused signal for a series with too few bars.
func NotAvailable() FusedSignal {
	return FusedSignal{OverallSignal: SignalNA, OverallScore: 0, Signals: []IndicatorVote{}}
}

// SignalFromScore renders a summed score into an overall signal.
func SignalFromScore(score int) string {
	switch {
	case score >= BuyThreshold:
		return SignalBuy
	case score <= SellThreshold:
		return SignalSell
	default:
		return SignalHold
	}
}
