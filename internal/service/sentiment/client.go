package sentiment

import (
	"context"
	"strings"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	domservice "CoinPulse/internal/domain/service"
	"CoinPulse/internal/service/providerbase"
	xhttp "CoinPulse/pkg/http"
	"CoinPulse/pkg/logger"
)

// Client calls the remote sentiment service. A failed call degrades to
// the static fallback report rather than erroring.
type Client struct {
	baseURL string
	caller  *providerbase.Caller
}

// New creates a sentiment client.
func New(baseURL string, timeout time.Duration, retries int, backoff time.Duration, metrics domrepo.Metrics, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		caller:  providerbase.NewCaller(models.SourceSentiment, timeout, retries, backoff, metrics, log),
	}
}

// CoinOf strips the quote suffix from a trading pair ("BTC-USD" -> "BTC").
func CoinOf(symbol string) string {
	coin, _, _ := strings.Cut(symbol, "-")
	return coin
}

// Fetch returns analyzed news sentiment for symbol. On any failure the
// result is the static fallback, marked degraded.
func (c *Client) Fetch(ctx context.Context, symbol string) models.SentimentResult {
	var report models.SentimentReport
	_, err := c.caller.Do(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/sentiment/" + symbol,
	}, &report)
	if err != nil {
		return models.SentimentResult{Report: FallbackReport(CoinOf(symbol)), Degraded: true}
	}
	if report.News == nil {
		report.News = []models.NewsItem{}
	}
	return models.SentimentResult{Report: report}
}

var _ domservice.SentimentProvider = (*Client)(nil)
