package models

import "time"

// Provider sources merged by the aggregator.
const (
	SourceTechnical = "technical"
	SourceSentiment = "sentiment"
	SourceOnChain   = "onchain"
)

// NewsItem is one analyzed headline from the sentiment provider.
type NewsItem struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Label  string `json:"label"`
	Color  string `json:"color"`
}

// SentimentReport is the sentiment provider payload for one symbol.
type SentimentReport struct {
	News            []NewsItem `json:"news"`
	Score           float64    `json:"score"`
	Prediction      string     `json:"prediction"`
	PredictionColor string     `json:"prediction_color"`
}

// OnChainStats is the on-chain provider payload for one symbol. All values
// are rendered strings; "N/A" is a valid reading, never an absent key.
type OnChainStats struct {
	HashLabel       string `json:"hash_label"`
	HashValue       string `json:"hash_value"`
	TransLabel      string `json:"trans_label"`
	TransValue      string `json:"trans_value"`
	Dominance       string `json:"dominance"`
	ActiveAddresses string `json:"active_addresses"`
	NVTRatio        string `json:"nvt_ratio"`
	TVL             string `json:"tvl"`
	WhaleStatus     string `json:"whale_status"`
	ExchangeFlows   string `json:"exchange_flows"`
	MVRV            string `json:"mvrv"`
}

// TechnicalResult wraps a fused signal with its degradation flag.
type TechnicalResult struct {
	Report   FusedSignal `json:"report"`
	Degraded bool        `json:"degraded"`
}

// SentimentResult wraps a sentiment report with its degradation flag.
type SentimentResult struct {
	Report   SentimentReport `json:"report"`
	Degraded bool            `json:"degraded"`
}

// OnChainResult wraps on-chain stats with whole-result and per-field
// degradation. DegradedFields lists enrichment fields that individually
// fell back while the rest of the result stayed live.
type OnChainResult struct {
	Stats          OnChainStats `json:"stats"`
	Degraded       bool         `json:"degraded"`
	DegradedFields []string     `json:"degraded_fields,omitempty"`
}

// Forecast is the opaque price-forecasting service response.
type Forecast struct {
	PredictedPrice float64   `json:"predicted_price"`
	TargetDate     string    `json:"target_date"`
	LastKnownPrice float64   `json:"last_known_price"`
	Direction      string    `json:"direction"` // UP or DOWN
	DaysAhead      int       `json:"days_ahead"`
	ChartLabels    []string  `json:"chart_labels"`
	ChartValues    []float64 `json:"chart_values"`
}

// AggregatedReport merges the three provider sections for one symbol.
// Every section is always present; Degraded marks which ones came from
// fallback data.
type AggregatedReport struct {
	Symbol    string                 `json:"symbol"`
	Timestamp time.Time              `json:"timestamp"`
	Technical map[string]FusedSignal `json:"technical"` // keyed by timeframe
	Sentiment SentimentReport        `json:"sentiment"`
	OnChain   OnChainStats           `json:"on_chain"`
	Degraded  map[string]bool        `json:"degraded"` // keyed by source
}
