package marketdata

import (
	"context"
	"fmt"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	"CoinPulse/internal/service/ratelimit"
	xhttp "CoinPulse/pkg/http"
	"CoinPulse/pkg/util"
)

const limiterKey = "marketdata"

// Client fetches daily bars from the market-data provider over its
// request/response history endpoint.
type Client struct {
	baseURL      string
	client       *xhttp.Client
	limiter      *ratelimit.Limiter
	rateCapacity float64
	rateRefill   float64
}

// Option configures Client.
type Option func(*Client)

// WithRate sets the token-bucket parameters for outgoing requests.
func WithRate(capacity, refillPerSec float64) Option {
	return func(c *Client) {
		c.rateCapacity = capacity
		c.rateRefill = refillPerSec
	}
}

// New creates a market-data client.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:      baseURL,
		client:       xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter:      ratelimit.New(),
		rateCapacity: 10,
		rateRefill:   5,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchDaily returns daily bars for symbol from `from` onward, dates
// ascending. An empty slice means the provider has nothing new.
func (c *Client) FetchDaily(ctx context.Context, symbol string, from time.Time) ([]models.Bar, error) {
	if err := c.limiter.Wait(ctx, limiterKey, c.rateCapacity, c.rateRefill); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var bars []models.Bar
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/history/daily",
		QueryParams: map[string]string{
			"symbol":   symbol,
			"from":     from.Format(util.DayFormat),
			"interval": "1d",
		},
	}, &bars)
	if err != nil {
		return nil, fmt.Errorf("fetch daily %s: %w", symbol, err)
	}

	// Providers occasionally include the requested day's predecessor or
	// unsorted tails; normalize so the pipeline can trust the order.
	out := bars[:0]
	for _, b := range bars {
		if b.Date.Before(from) {
			continue
		}
		out = append(out, b)
	}
	for i := 1; i < len(out); i++ {
		if !out[i-1].Date.Before(out[i].Date) {
			return nil, fmt.Errorf("fetch daily %s: bars not strictly ascending", symbol)
		}
	}
	return out, nil
}

var _ domrepo.BarSource = (*Client)(nil)
