package forecast

import (
	"context"
	"fmt"
	"time"

	"CoinPulse/internal/domain/models"
	domservice "CoinPulse/internal/domain/service"
	xhttp "CoinPulse/pkg/http"
	"CoinPulse/pkg/util"
)

// Client calls the price-forecasting service. The model behind it is
// opaque; unlike the analysis providers, errors surface to the caller.
type Client struct {
	baseURL string
	client  *xhttp.Client
}

// New creates a forecast client.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// Predict requests a price forecast for symbol at the target date.
func (c *Client) Predict(ctx context.Context, symbol string, target time.Time) (models.Forecast, error) {
	var f models.Forecast
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/predict/" + symbol,
		QueryParams: map[string]string{
			"date": target.Format(util.DayFormat),
		},
	}, &f)
	if err != nil {
		return models.Forecast{}, fmt.Errorf("forecast %s: %w", symbol, err)
	}
	return f, nil
}

var _ domservice.ForecastService = (*Client)(nil)
