package sentiment

import (
	"fmt"

	"CoinPulse/internal/domain/models"
)

// FallbackReport is the deterministic sentiment payload served when the
// provider is unreachable. The article set is static so repeated degraded
// responses are identical for the same symbol.
func FallbackReport(coin string) models.SentimentReport {
	return models.SentimentReport{
		News: []models.NewsItem{
			{
				Title:  fmt.Sprintf("Market outlook for %s remains cautiously optimistic", coin),
				Source: "CryptoDaily",
				Label:  "Positive",
				Color:  "text-success",
			},
			{
				Title:  fmt.Sprintf("%s sees increased volume across major exchanges", coin),
				Source: "CoinDesk",
				Label:  "Neutral",
				Color:  "text-warning",
			},
			{
				Title:  "Regulatory updates spark discussion among investors",
				Source: "Bloomberg",
				Label:  "Neutral",
				Color:  "text-warning",
			},
			{
				Title:  "Technical patterns suggest consolidation phase",
				Source: "TradingView",
				Label:  "Neutral",
				Color:  "text-warning",
			},
		},
		Score:           0.12,
		Prediction:      "Bullish (Steady)",
		PredictionColor: "success",
	}
}
