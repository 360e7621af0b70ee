package technical

import (
	"context"
	"time"

	"CoinPulse/internal/domain/models"
	domrepo "CoinPulse/internal/domain/repository"
	domservice "CoinPulse/internal/domain/service"
	"CoinPulse/internal/service/providerbase"
	xhttp "CoinPulse/pkg/http"
	"CoinPulse/pkg/logger"
)

// Client calls the remote technical-analysis service. A failed call
// degrades to the N/A signal rather than erroring.
type Client struct {
	baseURL string
	caller  *providerbase.Caller
}

// New creates a technical-analysis client.
func New(baseURL string, timeout time.Duration, retries int, backoff time.Duration, metrics domrepo.Metrics, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		caller:  providerbase.NewCaller(models.SourceTechnical, timeout, retries, backoff, metrics, log),
	}
}

type analyzeRequest struct {
	Data []models.Bar `json:"data"`
}

// analyzeResponse accepts both response generations. Older deployments
// return only {"signal": "..."}; newer ones add the score and the
// per-indicator vote list.
type analyzeResponse struct {
	OverallSignal string                 `json:"overall_signal"`
	OverallScore  int                    `json:"overall_score"`
	Signals       []models.IndicatorVote `json:"signals"`
	Signal        string                 `json:"signal"`
}

func (r analyzeResponse) toFused() models.FusedSignal {
	if r.OverallSignal != "" {
		signals := r.Signals
		if signals == nil {
			signals = []models.IndicatorVote{}
		}
		return models.FusedSignal{
			OverallSignal: r.OverallSignal,
			OverallScore:  r.OverallScore,
			Signals:       signals,
		}
	}
	if r.Signal != "" {
		return models.FusedSignal{
			OverallSignal: r.Signal,
			OverallScore:  0,
			Signals:       []models.IndicatorVote{},
		}
	}
	return models.NotAvailable()
}

// Analyze posts the bar series and returns the fused signal. On any
// failure the result is the N/A signal, marked degraded.
func (c *Client) Analyze(ctx context.Context, bars []models.Bar) models.TechnicalResult {
	var resp analyzeResponse
	_, err := c.caller.Do(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/analyze",
		Body:   analyzeRequest{Data: bars},
	}, &resp)
	if err != nil {
		return models.TechnicalResult{Report: models.NotAvailable(), Degraded: true}
	}
	return models.TechnicalResult{Report: resp.toFused()}
}

var _ domservice.TechnicalProvider = (*Client)(nil)
